package schema

import (
	"time"

	"github.com/mintstream/marketplace-indexer/internal/domain"
)

// OfferStatus represents the offer lifecycle
type OfferStatus string

const (
	OfferStatusCreated   OfferStatus = "created"
	OfferStatusCompleted OfferStatus = "completed"
)

// Offer represents the offers table - offers made against direct listings,
// keyed by transaction hash
type Offer struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TxHash is the offer transaction hash
	TxHash string `gorm:"column:tx_hash;not null;type:text;uniqueIndex:idx_offers_tx_chain,priority:1"`
	// Chain identifies the blockchain network
	Chain domain.Chain `gorm:"column:chain;not null;type:text;uniqueIndex:idx_offers_tx_chain,priority:2"`
	// ListingID references the listing the offer targets
	ListingID string `gorm:"column:listing_id;not null;type:numeric(78,0);index"`
	// OfferorAddress is the address making the offer
	OfferorAddress string `gorm:"column:offeror_address;not null;type:text"`
	// QuantityWanted is the number of units the offer covers
	QuantityWanted string `gorm:"column:quantity_wanted;not null;type:numeric(78,0)"`
	// TotalOfferAmount is the full amount offered
	TotalOfferAmount string `gorm:"column:total_offer_amount;not null;type:numeric(78,0)"`
	// Currency is the payment token address
	Currency string `gorm:"column:currency;not null;type:text"`
	// ExpirationTime is when the offer lapses on chain
	ExpirationTime time.Time `gorm:"column:expiration_time;not null;type:timestamptz"`
	// Status is created until the offer is accepted
	Status OfferStatus `gorm:"column:status;not null;type:text"`
	// Timestamp is the block timestamp of the offer
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// CreatedAt is when the offer was indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is stamped on status changes
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Offer model
func (Offer) TableName() string {
	return "offers"
}
