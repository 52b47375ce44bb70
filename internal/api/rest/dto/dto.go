// Package dto defines the REST API response shapes. The store's schema
// structs never leak to clients directly.
package dto

import (
	"time"

	"github.com/mintstream/marketplace-indexer/internal/store"
	"github.com/mintstream/marketplace-indexer/internal/store/schema"
)

// ImportJob is the public view of a collection import
type ImportJob struct {
	JobID            string    `json:"job_id"`
	ContractAddress  string    `json:"contract_address"`
	Chain            string    `json:"chain"`
	TokenStandard    string    `json:"token_standard"`
	CreatorAddress   string    `json:"creator_address"`
	DeployedAtBlock  uint64    `json:"deployed_at_block"`
	LastIndexedBlock uint64    `json:"last_indexed_block"`
	Status           string    `json:"status"`
	ImportFinished   bool      `json:"import_finished"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewImportJob maps an import record to its public view
func NewImportJob(record *schema.ImportedContract) ImportJob {
	return ImportJob{
		JobID:            record.JobID,
		ContractAddress:  record.ContractAddress,
		Chain:            string(record.Chain),
		TokenStandard:    string(record.TokenStandard),
		CreatorAddress:   record.CreatorAddress,
		DeployedAtBlock:  record.DeployedAtBlock,
		LastIndexedBlock: record.LastIndexedBlock,
		Status:           string(record.Status),
		ImportFinished:   record.ImportFinished,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}

// Owner is one holder of a token
type Owner struct {
	OwnerAddress string `json:"owner_address"`
	Quantity     string `json:"quantity"`
}

// Item is the public view of an indexed token, with its current owners
type Item struct {
	ContractAddress string    `json:"contract_address"`
	Chain           string    `json:"chain"`
	TokenNumber     string    `json:"token_number"`
	Standard        string    `json:"standard"`
	CreatorAddress  string    `json:"creator_address"`
	Name            string    `json:"name"`
	ImageURI        *string   `json:"image_uri,omitempty"`
	MetadataURI     *string   `json:"metadata_uri,omitempty"`
	Supply          string    `json:"supply"`
	Owners          []Owner   `json:"owners"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewItem maps an item row and its ownership rows to the public view
func NewItem(item *schema.Item, ownerships []schema.Ownership) Item {
	owners := make([]Owner, 0, len(ownerships))
	for _, o := range ownerships {
		owners = append(owners, Owner{
			OwnerAddress: o.OwnerAddress,
			Quantity:     o.Quantity,
		})
	}
	return Item{
		ContractAddress: item.ContractAddress,
		Chain:           string(item.Chain),
		TokenNumber:     item.TokenNumber,
		Standard:        string(item.Standard),
		CreatorAddress:  item.CreatorAddress,
		Name:            item.Name,
		ImageURI:        item.ImageURI,
		MetadataURI:     item.MetadataURI,
		Supply:          item.Supply,
		Owners:          owners,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// Listing is the public view of a marketplace listing
type Listing struct {
	ListingID            string    `json:"listing_id"`
	Chain                string    `json:"chain"`
	ContractAddress      string    `json:"contract_address"`
	TokenNumber          string    `json:"token_number"`
	TokenOwner           string    `json:"token_owner"`
	ListingType          string    `json:"listing_type"`
	Quantity             string    `json:"quantity"`
	Currency             string    `json:"currency"`
	ReservePricePerToken string    `json:"reserve_price_per_token"`
	BuyoutPricePerToken  string    `json:"buyout_price_per_token"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Status               string    `json:"status"`
	ClosedByLister       bool      `json:"closed_by_lister"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NewListing maps a listing row to the public view
func NewListing(listing *schema.Listing) Listing {
	return Listing{
		ListingID:            listing.ListingID,
		Chain:                string(listing.Chain),
		ContractAddress:      listing.ContractAddress,
		TokenNumber:          listing.TokenNumber,
		TokenOwner:           listing.TokenOwner,
		ListingType:          string(listing.ListingType),
		Quantity:             listing.Quantity,
		Currency:             listing.Currency,
		ReservePricePerToken: listing.ReservePricePerToken,
		BuyoutPricePerToken:  listing.BuyoutPricePerToken,
		StartTime:            listing.StartTime,
		EndTime:              listing.EndTime,
		Status:               string(listing.Status),
		ClosedByLister:       listing.ClosedByLister,
		CreatedAt:            listing.CreatedAt,
		UpdatedAt:            listing.UpdatedAt,
	}
}

// ListingPage is a paged listings response
type ListingPage struct {
	Listings []Listing `json:"listings"`
	Total    int64     `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// NewListingPage maps a page of listing rows to the public view
func NewListingPage(listings []schema.Listing, total int64, limit, offset int) ListingPage {
	page := ListingPage{
		Listings: make([]Listing, 0, len(listings)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
	for i := range listings {
		page.Listings = append(page.Listings, NewListing(&listings[i]))
	}
	return page
}

// Activity is one entry of a token's history
type Activity struct {
	ActivityType string    `json:"activity_type"`
	TxHash       string    `json:"tx_hash"`
	FromAddress  string    `json:"from_address"`
	ToAddress    string    `json:"to_address"`
	Quantity     string    `json:"quantity"`
	Price        string    `json:"price"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewActivity maps unioned activity rows to the public view
func NewActivity(entries []store.ActivityEntry) []Activity {
	activities := make([]Activity, 0, len(entries))
	for _, e := range entries {
		activities = append(activities, Activity{
			ActivityType: e.ActivityType,
			TxHash:       e.TxHash,
			FromAddress:  e.FromAddress,
			ToAddress:    e.ToAddress,
			Quantity:     e.Quantity,
			Price:        e.Price,
			Timestamp:    e.Timestamp,
		})
	}
	return activities
}
