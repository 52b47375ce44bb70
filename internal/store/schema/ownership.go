package schema

import (
	"time"

	"github.com/mintstream/marketplace-indexer/internal/domain"
)

// Ownership represents the ownerships table - current balances per owner.
// For any (contract, chain, token) the quantities across owners always sum to
// minted-minus-burned; transfers only redistribute.
type Ownership struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ContractAddress is the token contract
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_ownerships_key,priority:1"`
	// Chain identifies the blockchain network
	Chain domain.Chain `gorm:"column:chain;not null;type:text;uniqueIndex:idx_ownerships_key,priority:2"`
	// TokenNumber is the token ID within the contract
	TokenNumber string `gorm:"column:token_number;not null;type:text;uniqueIndex:idx_ownerships_key,priority:3"`
	// OwnerAddress is the holder's address
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;uniqueIndex:idx_ownerships_key,priority:4;index:idx_ownerships_owner"`
	// Quantity is the number of units held, never negative
	Quantity string `gorm:"column:quantity;not null;type:numeric(78,0)"`
	// CreatedAt is when this owner first held the token
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the balance last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Ownership model
func (Ownership) TableName() string {
	return "ownerships"
}
