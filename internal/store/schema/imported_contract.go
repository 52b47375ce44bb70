package schema

import (
	"time"

	"github.com/mintstream/marketplace-indexer/internal/domain"
)

// ImportStatus represents the lifecycle of a collection import
type ImportStatus string

const (
	// ImportStatusImporting means the backfill for the contract is running
	ImportStatusImporting ImportStatus = "importing"
	// ImportStatusFinished means the backfill completed; live events keep the
	// collection current from here on
	ImportStatusFinished ImportStatus = "finished"
	// ImportStatusFailed means the import stopped before completion and may
	// be resubmitted
	ImportStatusFailed ImportStatus = "failed"
)

// ImportedContract represents the imported_contracts table - one row per
// external collection brought under indexing
type ImportedContract struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// JobID is the public identifier returned on submission
	JobID string `gorm:"column:job_id;not null;uniqueIndex;type:text"`
	// ContractAddress is the collection's contract address
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_imported_contracts_addr_chain,priority:1"`
	// Chain identifies the blockchain network
	Chain domain.Chain `gorm:"column:chain;not null;type:text;uniqueIndex:idx_imported_contracts_addr_chain,priority:2"`
	// TokenStandard is the classified contract type (erc721, erc1155)
	TokenStandard domain.TokenStandard `gorm:"column:token_standard;not null;type:text"`
	// CreatorAddress is the resolved collection creator (owner() probe, then
	// deployer, then the zero address)
	CreatorAddress string `gorm:"column:creator_address;not null;type:text"`
	// DeployedAtBlock is the first block where the contract bytecode exists
	DeployedAtBlock uint64 `gorm:"column:deployed_at_block;not null"`
	// LastIndexedBlock mirrors the import stream's checkpoint for reporting
	LastIndexedBlock uint64 `gorm:"column:last_indexed_block;not null;default:0"`
	// Status tracks importing -> finished; finished is set exactly once
	Status ImportStatus `gorm:"column:status;not null;type:text"`
	// ImportFinished flips false->true when the scoped backfill completes
	ImportFinished bool `gorm:"column:import_finished;not null;default:false"`
	// CreatedAt is when the import was first submitted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the row last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ImportedContract model
func (ImportedContract) TableName() string {
	return "imported_contracts"
}
