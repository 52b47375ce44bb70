package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/mintstream/marketplace-indexer/internal/domain"
)

// ListingStatus represents the listing lifecycle. Cancelled and completed are
// terminal: no write may transition a listing out of either.
type ListingStatus string

const (
	ListingStatusCreated   ListingStatus = "created"
	ListingStatusCancelled ListingStatus = "cancelled"
	ListingStatusCompleted ListingStatus = "completed"
)

// Listing represents the listings table - marketplace listings keyed by the
// chain-assigned listing ID
type Listing struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ListingID is the chain-assigned listing identifier
	ListingID string `gorm:"column:listing_id;not null;type:numeric(78,0);uniqueIndex:idx_listings_listing_chain,priority:1"`
	// Chain identifies the blockchain network
	Chain domain.Chain `gorm:"column:chain;not null;type:text;uniqueIndex:idx_listings_listing_chain,priority:2"`
	// ContractAddress is the listed token's contract
	ContractAddress string `gorm:"column:contract_address;not null;type:text;index:idx_listings_contract_token,priority:1"`
	// TokenNumber is the listed token's ID
	TokenNumber string `gorm:"column:token_number;not null;type:text;index:idx_listings_contract_token,priority:2"`
	// TokenOwner is the address that created the listing
	TokenOwner string `gorm:"column:token_owner;not null;type:text"`
	// ListingType is direct (fixed buyout price) or auction (reserve + bids)
	ListingType domain.ListingType `gorm:"column:listing_type;not null;type:text"`
	// Quantity is the number of units offered
	Quantity string `gorm:"column:quantity;not null;type:numeric(78,0)"`
	// Currency is the payment token address
	Currency string `gorm:"column:currency;not null;type:text"`
	// ReservePricePerToken is the auction reserve price
	ReservePricePerToken string `gorm:"column:reserve_price_per_token;not null;type:numeric(78,0)"`
	// BuyoutPricePerToken is the direct/buyout price
	BuyoutPricePerToken string `gorm:"column:buyout_price_per_token;not null;type:numeric(78,0)"`
	// StartTime is when the listing opens
	StartTime time.Time `gorm:"column:start_time;not null;type:timestamptz"`
	// EndTime is when the listing closes (clamped to the store maximum for
	// never-expiring listings)
	EndTime time.Time `gorm:"column:end_time;not null;type:timestamptz"`
	// Status is the lifecycle state
	Status ListingStatus `gorm:"column:status;not null;type:text;index"`
	// ClosedByLister marks an auction closed by its creator. Informational,
	// not terminal.
	ClosedByLister bool `gorm:"column:closed_by_lister;not null;default:false"`
	// Raw is the decoded creation event as JSON
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is when the listing was indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is stamped on every state change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Listing model
func (Listing) TableName() string {
	return "listings"
}
