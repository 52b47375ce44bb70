package schema

import (
	"time"

	"github.com/mintstream/marketplace-indexer/internal/domain"
)

// RoyaltyPayment represents the royalty_payments table - one row per
// (transaction, recipient), amount = totalPayout * bps / 10000
type RoyaltyPayment struct {
	ID               int64        `gorm:"column:id;primaryKey;autoIncrement"`
	TxHash           string       `gorm:"column:tx_hash;not null;type:text;uniqueIndex:idx_royalty_payments_tx_recipient,priority:1"`
	RecipientAddress string       `gorm:"column:recipient_address;not null;type:text;uniqueIndex:idx_royalty_payments_tx_recipient,priority:2"`
	Chain            domain.Chain `gorm:"column:chain;not null;type:text"`
	ListingID        string       `gorm:"column:listing_id;not null;type:numeric(78,0);index"`
	// SaleKind records whether the listing reference matched the listings or
	// the offers table at reconciliation time
	SaleKind  *SaleKind `gorm:"column:sale_kind;type:text"`
	Bps       uint32    `gorm:"column:bps;not null"`
	Amount    string    `gorm:"column:amount;not null;type:numeric(78,0)"`
	Currency  string    `gorm:"column:currency;not null;type:text"`
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RoyaltyPayment model
func (RoyaltyPayment) TableName() string {
	return "royalty_payments"
}
