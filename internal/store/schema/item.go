package schema

import (
	"time"

	"github.com/mintstream/marketplace-indexer/internal/domain"
)

// Item represents the items table - the token metadata cache. Items are
// created lazily on the first observed mint for a token and updated (supply
// incremented) on subsequent mints of multi-supply tokens.
type Item struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ContractAddress is the token contract
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_items_key,priority:1"`
	// Chain identifies the blockchain network
	Chain domain.Chain `gorm:"column:chain;not null;type:text;uniqueIndex:idx_items_key,priority:2"`
	// TokenNumber is the token ID within the contract
	TokenNumber string `gorm:"column:token_number;not null;type:text;uniqueIndex:idx_items_key,priority:3"`
	// Standard is the token standard of the contract
	Standard domain.TokenStandard `gorm:"column:standard;not null;type:text"`
	// CreatorAddress is the minter of the first observed edition
	CreatorAddress string `gorm:"column:creator_address;not null;type:text"`
	// Name is the metadata name, or a placeholder when resolution failed
	Name string `gorm:"column:name;not null;type:text"`
	// ImageURI is the metadata image location, if any
	ImageURI *string `gorm:"column:image_uri;type:text"`
	// MetadataURI is the tokenURI/uri value the metadata was fetched from
	MetadataURI *string `gorm:"column:metadata_uri;type:text"`
	// Supply is the total quantity minted so far (numeric for 256-bit range)
	Supply string `gorm:"column:supply;not null;type:numeric(78,0)"`
	// CreatedAt is when the first mint was indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the row last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Item model
func (Item) TableName() string {
	return "items"
}
