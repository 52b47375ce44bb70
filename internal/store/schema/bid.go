package schema

import (
	"time"

	"github.com/mintstream/marketplace-indexer/internal/domain"
)

// Bid represents the bids table - append-only auction bid history per
// (listing, bidder)
type Bid struct {
	ID             int64        `gorm:"column:id;primaryKey;autoIncrement"`
	Chain          domain.Chain `gorm:"column:chain;not null;type:text"`
	ListingID      string       `gorm:"column:listing_id;not null;type:numeric(78,0);index:idx_bids_listing_bidder,priority:1"`
	BidderAddress  string       `gorm:"column:bidder_address;not null;type:text;index:idx_bids_listing_bidder,priority:2"`
	QuantityWanted string       `gorm:"column:quantity_wanted;not null;type:numeric(78,0)"`
	PricePerToken  string       `gorm:"column:price_per_token;not null;type:numeric(78,0)"`
	Currency       string       `gorm:"column:currency;not null;type:text"`
	TxHash         string       `gorm:"column:tx_hash;not null;type:text"`
	Timestamp      time.Time    `gorm:"column:timestamp;not null;type:timestamptz"`
	CreatedAt      time.Time    `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Bid model
func (Bid) TableName() string {
	return "bids"
}
