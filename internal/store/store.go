package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/mintstream/marketplace-indexer/internal/domain"
	"github.com/mintstream/marketplace-indexer/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetCheckpoint retrieves the last fully processed block for a stream.
	// Returns 0 when the stream has never been checkpointed.
	GetCheckpoint(ctx context.Context, streamID string) (uint64, error)
	// SaveCheckpoint advances the stream checkpoint. A value lower than the
	// stored one is silently ignored (checkpoints never regress).
	SaveCheckpoint(ctx context.Context, streamID string, blockNumber uint64) error

	// ApplyTransfer applies a transfer log's ownership effects behind the
	// idempotency ledger. Returns false when the log was already applied.
	ApplyTransfer(ctx context.Context, input ApplyTransferInput) (bool, error)

	// GetItem retrieves an item, or domain.ErrItemNotFound
	GetItem(ctx context.Context, contractAddress string, chain domain.Chain, tokenNumber string) (*schema.Item, error)
	// GetOwnerships lists current balances for a token
	GetOwnerships(ctx context.Context, contractAddress string, chain domain.Chain, tokenNumber string) ([]schema.Ownership, error)

	// CreateListing creates a listing if its ID is unseen and the referenced
	// item is known. Returns false (and no error) otherwise.
	CreateListing(ctx context.Context, input CreateListingInput) (bool, error)
	// GetListing retrieves a listing, or domain.ErrListingNotFound
	GetListing(ctx context.Context, chain domain.Chain, listingID string) (*schema.Listing, error)
	// RefreshListing overwrites the mutable listing fields from an
	// authoritative chain snapshot. Terminal listings are left untouched.
	RefreshListing(ctx context.Context, chain domain.Chain, snapshot domain.ListingSnapshot, at time.Time) error
	// CancelListing transitions a listing to cancelled. No-op when terminal.
	CancelListing(ctx context.Context, chain domain.Chain, listingID string, at time.Time) error
	// MarkListingClosedByLister flags an auction closed by its creator
	MarkListingClosedByLister(ctx context.Context, chain domain.Chain, listingID string, at time.Time) error

	// CreateSale records a sale once per transaction hash and completes the
	// referenced listing (and any matching open offer) in the same
	// transaction. Returns false when the sale already exists.
	CreateSale(ctx context.Context, input CreateSaleInput) (bool, error)
	// CreateOffer records an offer once per transaction hash
	CreateOffer(ctx context.Context, input CreateOfferInput) (bool, error)
	// CreateBid appends an auction bid
	CreateBid(ctx context.Context, input CreateBidInput) error
	// CreateRoyaltyPayments records one payment per recipient, skipping
	// recipients already paid for the transaction
	CreateRoyaltyPayments(ctx context.Context, input CreateRoyaltyPaymentsInput) error
	// GetRoyaltyPayments lists the recorded royalty rows for a transaction
	GetRoyaltyPayments(ctx context.Context, chain domain.Chain, txHash string) ([]schema.RoyaltyPayment, error)

	// GetImportedContract retrieves an import record by (address, chain)
	GetImportedContract(ctx context.Context, contractAddress string, chain domain.Chain) (*schema.ImportedContract, error)
	// GetImportedContractByJobID retrieves an import record by job ID
	GetImportedContractByJobID(ctx context.Context, jobID string) (*schema.ImportedContract, error)
	// CreateImportedContract creates the import record; the unique
	// (address, chain) index makes resubmission fail cleanly
	CreateImportedContract(ctx context.Context, input CreateImportedContractInput) (*schema.ImportedContract, error)
	// UpdateImportProgress advances last_indexed_block for reporting
	UpdateImportProgress(ctx context.Context, contractAddress string, chain domain.Chain, lastBlock uint64) error
	// FinishImport flips import_finished exactly once
	FinishImport(ctx context.Context, contractAddress string, chain domain.Chain) error
	// FailImport marks the import failed so it can be resubmitted
	FailImport(ctx context.Context, contractAddress string, chain domain.Chain) error
	// ListFinishedImportedContracts lists finished imports on a chain; the
	// live subscriber widens its tracked contract set with these
	ListFinishedImportedContracts(ctx context.Context, chain domain.Chain) ([]schema.ImportedContract, error)

	// GetListingsByStatus pages listings for the query surface
	GetListingsByStatus(ctx context.Context, chain domain.Chain, status schema.ListingStatus, limit int, offset int) ([]schema.Listing, int64, error)
	// GetTokenActivity unions transfer/listing/sale/offer rows for a token,
	// newest first
	GetTokenActivity(ctx context.Context, contractAddress string, chain domain.Chain, tokenNumber string, limit int) ([]ActivityEntry, error)
}

// ItemSeed carries the lazily resolved metadata used when a mint creates an
// item that is not indexed yet
type ItemSeed struct {
	Standard       domain.TokenStandard
	CreatorAddress string
	Name           string
	ImageURI       *string
	MetadataURI    *string
}

// ApplyTransferInput is one transfer log plus the item seed for mints
type ApplyTransferInput struct {
	Event    domain.Event
	Transfer domain.TransferPayload
	// ItemSeed must be set when the transfer is a mint (from == zero address)
	ItemSeed *ItemSeed
	Raw      datatypes.JSON
}

// CreateListingInput carries the decoded ListingAdded event
type CreateListingInput struct {
	Chain     domain.Chain
	Snapshot  domain.ListingSnapshot
	Timestamp time.Time
	Raw       datatypes.JSON
}

// CreateSaleInput carries the decoded NewSale event or a bidder-won auction close
type CreateSaleInput struct {
	Chain      domain.Chain
	TxHash     string
	ListingID  string
	Buyer      string
	Seller     string
	Quantity   string
	TotalPrice string
	Currency   string
	Timestamp  time.Time
}

// CreateOfferInput carries the decoded NewOffer event
type CreateOfferInput struct {
	Chain            domain.Chain
	TxHash           string
	ListingID        string
	Offeror          string
	QuantityWanted   string
	TotalOfferAmount string
	Currency         string
	ExpirationTime   time.Time
	Timestamp        time.Time
}

// CreateBidInput carries an auction bid derived from a NewOffer on an auction listing
type CreateBidInput struct {
	Chain          domain.Chain
	TxHash         string
	ListingID      string
	Bidder         string
	QuantityWanted string
	PricePerToken  string
	Currency       string
	Timestamp      time.Time
}

// CreateRoyaltyPaymentsInput carries one RoyaltyPaid event; amounts per
// recipient are computed as totalPayout * bps / 10000
type CreateRoyaltyPaymentsInput struct {
	Chain       domain.Chain
	TxHash      string
	ListingID   string
	Recipients  []domain.RoyaltyRecipient
	TotalPayout string
	Currency    string
	Timestamp   time.Time
}

// CreateImportedContractInput creates the import record at submission time
type CreateImportedContractInput struct {
	JobID           string
	ContractAddress string
	Chain           domain.Chain
	TokenStandard   domain.TokenStandard
	CreatorAddress  string
	DeployedAtBlock uint64
}

// ActivityEntry is one row of the unioned per-token activity history
type ActivityEntry struct {
	ActivityType string    `json:"activity_type"`
	TxHash       string    `json:"tx_hash"`
	FromAddress  string    `json:"from_address"`
	ToAddress    string    `json:"to_address"`
	Quantity     string    `json:"quantity"`
	Price        string    `json:"price"`
	Timestamp    time.Time `json:"timestamp"`
}
