package schema

import "time"

// Checkpoint records the last block fully processed for one logical stream.
// Stream IDs are "core:<chain>" for the primary contract set and
// "import:<chain>:<contract>" for each imported collection.
type Checkpoint struct {
	// StreamID identifies the logical event stream
	StreamID string `gorm:"column:stream_id;primaryKey;type:text"`
	// LastBlock is the last block whose effects are fully applied. Writes
	// never regress it: the store keeps the greater of old and new.
	LastBlock uint64 `gorm:"column:last_block;not null"`
	// UpdatedAt is when the checkpoint last advanced
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	// CreatedAt is when the stream was first seen
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for the Checkpoint model
func (Checkpoint) TableName() string {
	return "checkpoints"
}
