package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/mintstream/marketplace-indexer/internal/domain"
)

// TransferEvent represents the transfer_events table - the idempotency ledger.
// The unique (tx_hash, chain, tx_index, log_index) key is the at-most-once
// gate for applying a transfer's ownership effects: the row is written in the
// same transaction as the ownership deltas, so a replay of the log is a no-op.
// Rows are immutable once written.
type TransferEvent struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TxHash is the transaction hash of the originating log
	TxHash string `gorm:"column:tx_hash;not null;type:text;uniqueIndex:idx_transfer_events_ledger,priority:1"`
	// Chain identifies the blockchain network
	Chain domain.Chain `gorm:"column:chain;not null;type:text;uniqueIndex:idx_transfer_events_ledger,priority:2"`
	// TxIndex is the transaction's index within its block
	TxIndex uint64 `gorm:"column:tx_index;not null;uniqueIndex:idx_transfer_events_ledger,priority:3"`
	// LogIndex is the log's index within its block
	LogIndex uint64 `gorm:"column:log_index;not null;uniqueIndex:idx_transfer_events_ledger,priority:4"`
	// ContractAddress is the token contract that emitted the log
	ContractAddress string `gorm:"column:contract_address;not null;type:text;index:idx_transfer_events_contract_token,priority:1"`
	// TokenNumber is the token ID (string to support 256-bit values). For a
	// TransferBatch log this is the first entry; Raw carries the full set.
	TokenNumber string `gorm:"column:token_number;not null;type:text;index:idx_transfer_events_contract_token,priority:2"`
	// FromAddress is the sender (zero address for mints)
	FromAddress string `gorm:"column:from_address;not null;type:text"`
	// ToAddress is the recipient (zero address for burns)
	ToAddress string `gorm:"column:to_address;not null;type:text"`
	// Quantity is the number of units moved (numeric to support 78 digits)
	Quantity string `gorm:"column:quantity;not null;type:numeric(78,0)"`
	// BlockNumber is the block containing the log
	BlockNumber uint64 `gorm:"column:block_number;not null"`
	// Timestamp is the block timestamp
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// Raw is the decoded event payload as JSON, kept for debugging and for
	// batch transfers whose entries exceed the flat columns
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is when the row was indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TransferEvent model
func (TransferEvent) TableName() string {
	return "transfer_events"
}
