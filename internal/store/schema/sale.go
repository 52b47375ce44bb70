package schema

import (
	"time"

	"github.com/mintstream/marketplace-indexer/internal/domain"
)

// SaleKind records which table the royalty distributor's listing reference
// resolved against. Neither lookup is authoritative; the matched one is kept.
type SaleKind string

const (
	SaleKindListing SaleKind = "listing"
	SaleKindOffer   SaleKind = "offer"
)

// Sale represents the sales table - one row per completed purchase, keyed by
// transaction hash
type Sale struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TxHash is the purchase transaction hash
	TxHash string `gorm:"column:tx_hash;not null;type:text;uniqueIndex:idx_sales_tx_chain,priority:1"`
	// Chain identifies the blockchain network
	Chain domain.Chain `gorm:"column:chain;not null;type:text;uniqueIndex:idx_sales_tx_chain,priority:2"`
	// ListingID references the listing this sale completed
	ListingID string `gorm:"column:listing_id;not null;type:numeric(78,0);index"`
	// BuyerAddress is the purchaser
	BuyerAddress string `gorm:"column:buyer_address;not null;type:text"`
	// SellerAddress is the listing's token owner at sale time
	SellerAddress string `gorm:"column:seller_address;not null;type:text"`
	// Quantity is the number of units bought
	Quantity string `gorm:"column:quantity;not null;type:numeric(78,0)"`
	// TotalPrice is the full amount paid
	TotalPrice string `gorm:"column:total_price;not null;type:numeric(78,0)"`
	// Currency is the payment token address
	Currency string `gorm:"column:currency;not null;type:text"`
	// Timestamp is the block timestamp of the purchase
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// CreatedAt is when the sale was indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}
