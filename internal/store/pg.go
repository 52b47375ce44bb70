package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mintstream/marketplace-indexer/internal/domain"
	"github.com/mintstream/marketplace-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates all tables. The uniqueness constraints declared
// on the schema structs are the correctness backbone of the reconciler, so
// migration must run before any write path.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Checkpoint{},
		&schema.ImportedContract{},
		&schema.TransferEvent{},
		&schema.Ownership{},
		&schema.Item{},
		&schema.Listing{},
		&schema.Sale{},
		&schema.Offer{},
		&schema.Bid{},
		&schema.RoyaltyPayment{},
	)
}

// ConfigureConnectionPool sets pool limits on the underlying sql.DB,
// applying defaults for zero values
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return nil
}

// serializable runs fn in a SERIALIZABLE transaction. Ownership deltas
// read-then-write balances, so anything weaker could race a concurrent event
// touching the same (contract, token, owner) key.
func (s *pgStore) serializable(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// GetCheckpoint retrieves the last fully processed block for a stream
func (s *pgStore) GetCheckpoint(ctx context.Context, streamID string) (uint64, error) {
	var cp schema.Checkpoint
	err := s.db.WithContext(ctx).Where("stream_id = ?", streamID).First(&cp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get checkpoint: %w", err)
	}
	return cp.LastBlock, nil
}

// SaveCheckpoint advances the stream checkpoint. The GREATEST expression keeps
// a stale writer from regressing it: last-writer-wins only when greater.
func (s *pgStore) SaveCheckpoint(ctx context.Context, streamID string, blockNumber uint64) error {
	cp := schema.Checkpoint{
		StreamID:  streamID,
		LastBlock: blockNumber,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stream_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_block": gorm.Expr("GREATEST(checkpoints.last_block, EXCLUDED.last_block)"),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&cp).Error
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

// ApplyTransfer applies one transfer log behind the idempotency ledger. The
// ledger row and every dependent effect commit in a single transaction, so a
// failed attempt leaves no partial ledger entry and is safe to retry.
func (s *pgStore) ApplyTransfer(ctx context.Context, input ApplyTransferInput) (bool, error) {
	applied := false
	err := s.serializable(ctx, func(tx *gorm.DB) error {
		event := input.Event
		transfer := input.Transfer
		if len(transfer.Entries) == 0 {
			return nil
		}

		ledger := schema.TransferEvent{
			TxHash:          event.TxHash,
			Chain:           event.Chain,
			TxIndex:         event.TxIndex,
			LogIndex:        event.LogIndex,
			ContractAddress: event.ContractAddress,
			TokenNumber:     transfer.Entries[0].TokenNumber,
			FromAddress:     transfer.FromAddress,
			ToAddress:       transfer.ToAddress,
			Quantity:        transfer.Entries[0].Quantity,
			BlockNumber:     event.BlockNumber,
			Timestamp:       event.Timestamp,
			Raw:             input.Raw,
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "tx_hash"}, {Name: "chain"}, {Name: "tx_index"}, {Name: "log_index"},
			},
			DoNothing: true,
		}).Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&ledger).Error; err != nil {
			return fmt.Errorf("failed to write ledger row: %w", err)
		}

		// ID == 0 means the log was applied before; absorb the duplicate
		if ledger.ID == 0 {
			return nil
		}
		applied = true

		isMint := domain.IsZeroAddress(transfer.FromAddress)
		isBurn := domain.IsZeroAddress(transfer.ToAddress)

		for _, entry := range transfer.Entries {
			if isMint {
				if err := s.upsertItemOnMint(tx, event, transfer, entry, input.ItemSeed); err != nil {
					return err
				}
			} else {
				// Decrement the sender, floored at the existing balance.
				// The chain guarantees balances never go negative; the floor
				// only protects against observing a partial history.
				err := tx.Model(&schema.Ownership{}).
					Where("contract_address = ? AND chain = ? AND token_number = ? AND owner_address = ?",
						event.ContractAddress, event.Chain, entry.TokenNumber, transfer.FromAddress).
					Updates(map[string]interface{}{
						"quantity":   gorm.Expr("GREATEST(quantity - ?::numeric, 0)", entry.Quantity),
						"updated_at": event.Timestamp,
					}).Error
				if err != nil {
					return fmt.Errorf("failed to decrement sender balance: %w", err)
				}
			}

			if !isBurn {
				ownership := schema.Ownership{
					ContractAddress: event.ContractAddress,
					Chain:           event.Chain,
					TokenNumber:     entry.TokenNumber,
					OwnerAddress:    transfer.ToAddress,
					Quantity:        entry.Quantity,
				}
				if err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{
						{Name: "contract_address"}, {Name: "chain"}, {Name: "token_number"}, {Name: "owner_address"},
					},
					DoUpdates: clause.Assignments(map[string]interface{}{
						"quantity":   gorm.Expr("ownerships.quantity + EXCLUDED.quantity"),
						"updated_at": event.Timestamp,
					}),
				}).Create(&ownership).Error; err != nil {
					return fmt.Errorf("failed to increment receiver balance: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// upsertItemOnMint lazily creates the item on the first observed mint and
// increments the minted supply on later mints of the same multi-supply token
func (s *pgStore) upsertItemOnMint(tx *gorm.DB, event domain.Event, transfer domain.TransferPayload, entry domain.TransferEntry, seed *ItemSeed) error {
	item := schema.Item{
		ContractAddress: event.ContractAddress,
		Chain:           event.Chain,
		TokenNumber:     entry.TokenNumber,
		Standard:        transfer.Standard,
		CreatorAddress:  transfer.ToAddress,
		Name:            fmt.Sprintf("Untitled #%s", entry.TokenNumber),
		Supply:          entry.Quantity,
	}
	if seed != nil {
		item.Standard = seed.Standard
		item.CreatorAddress = seed.CreatorAddress
		item.Name = seed.Name
		item.ImageURI = seed.ImageURI
		item.MetadataURI = seed.MetadataURI
	}

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "contract_address"}, {Name: "chain"}, {Name: "token_number"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"supply":     gorm.Expr("items.supply + EXCLUDED.supply"),
			"updated_at": event.Timestamp,
		}),
	}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert item: %w", err)
	}
	return nil
}

// GetItem retrieves an item, or domain.ErrItemNotFound
func (s *pgStore) GetItem(ctx context.Context, contractAddress string, chain domain.Chain, tokenNumber string) (*schema.Item, error) {
	var item schema.Item
	err := s.db.WithContext(ctx).
		Where("contract_address = ? AND chain = ? AND token_number = ?", contractAddress, chain, tokenNumber).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

// GetOwnerships lists current balances for a token
func (s *pgStore) GetOwnerships(ctx context.Context, contractAddress string, chain domain.Chain, tokenNumber string) ([]schema.Ownership, error) {
	var ownerships []schema.Ownership
	err := s.db.WithContext(ctx).
		Where("contract_address = ? AND chain = ? AND token_number = ?", contractAddress, chain, tokenNumber).
		Order("owner_address").
		Find(&ownerships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ownerships: %w", err)
	}
	return ownerships, nil
}

// CreateListing creates a listing once. Duplicate listing IDs and listings
// for tokens the store has never seen are absorbed as no-ops.
func (s *pgStore) CreateListing(ctx context.Context, input CreateListingInput) (bool, error) {
	created := false
	err := s.serializable(ctx, func(tx *gorm.DB) error {
		snap := input.Snapshot

		var item schema.Item
		err := tx.Where("contract_address = ? AND chain = ? AND token_number = ?",
			snap.AssetContract, input.Chain, snap.TokenNumber).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // token unknown, listing skipped
			}
			return fmt.Errorf("failed to look up item for listing: %w", err)
		}

		listing := schema.Listing{
			ListingID:            snap.ListingID,
			Chain:                input.Chain,
			ContractAddress:      snap.AssetContract,
			TokenNumber:          snap.TokenNumber,
			TokenOwner:           snap.TokenOwner,
			ListingType:          snap.ListingType,
			Quantity:             snap.Quantity,
			Currency:             snap.Currency,
			ReservePricePerToken: snap.ReservePrice,
			BuyoutPricePerToken:  snap.BuyoutPrice,
			StartTime:            snap.StartTime,
			EndTime:              snap.EndTime,
			Status:               schema.ListingStatusCreated,
			Raw:                  input.Raw,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "listing_id"}, {Name: "chain"}},
			DoNothing: true,
		}).Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&listing).Error; err != nil {
			return fmt.Errorf("failed to create listing: %w", err)
		}
		created = listing.ID != 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// GetListing retrieves a listing, or domain.ErrListingNotFound
func (s *pgStore) GetListing(ctx context.Context, chain domain.Chain, listingID string) (*schema.Listing, error) {
	var listing schema.Listing
	err := s.db.WithContext(ctx).
		Where("listing_id = ? AND chain = ?", listingID, chain).
		First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// terminalGuard excludes cancelled and completed listings from updates
func terminalGuard(tx *gorm.DB, chain domain.Chain, listingID string) *gorm.DB {
	return tx.Model(&schema.Listing{}).
		Where("listing_id = ? AND chain = ?", listingID, chain).
		Where("status NOT IN ?", []schema.ListingStatus{schema.ListingStatusCancelled, schema.ListingStatusCompleted})
}

// RefreshListing overwrites the mutable listing fields from an authoritative
// chain snapshot. Events that carry only part of the listing never patch
// fields directly; the caller re-fetched the full struct from the contract.
func (s *pgStore) RefreshListing(ctx context.Context, chain domain.Chain, snapshot domain.ListingSnapshot, at time.Time) error {
	err := terminalGuard(s.db.WithContext(ctx), chain, snapshot.ListingID).
		Updates(map[string]interface{}{
			"token_owner":             snapshot.TokenOwner,
			"quantity":                snapshot.Quantity,
			"currency":                snapshot.Currency,
			"reserve_price_per_token": snapshot.ReservePrice,
			"buyout_price_per_token":  snapshot.BuyoutPrice,
			"start_time":              snapshot.StartTime,
			"end_time":                snapshot.EndTime,
			"updated_at":              at,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to refresh listing: %w", err)
	}
	return nil
}

// CancelListing transitions a listing to cancelled. Terminal listings are
// untouched, so cancelled/completed states are never overwritten.
func (s *pgStore) CancelListing(ctx context.Context, chain domain.Chain, listingID string, at time.Time) error {
	err := terminalGuard(s.db.WithContext(ctx), chain, listingID).
		Updates(map[string]interface{}{
			"status":     schema.ListingStatusCancelled,
			"updated_at": at,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to cancel listing: %w", err)
	}
	return nil
}

// MarkListingClosedByLister flags an auction closed by its creator. The flag
// is informational and does not end the listing lifecycle.
func (s *pgStore) MarkListingClosedByLister(ctx context.Context, chain domain.Chain, listingID string, at time.Time) error {
	err := terminalGuard(s.db.WithContext(ctx), chain, listingID).
		Updates(map[string]interface{}{
			"closed_by_lister": true,
			"updated_at":       at,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark listing closed by lister: %w", err)
	}
	return nil
}

// CreateSale records a sale once per transaction hash, completes the listing
// and completes any open offer from the buyer, all in one transaction
func (s *pgStore) CreateSale(ctx context.Context, input CreateSaleInput) (bool, error) {
	created := false
	err := s.serializable(ctx, func(tx *gorm.DB) error {
		sale := schema.Sale{
			TxHash:        input.TxHash,
			Chain:         input.Chain,
			ListingID:     input.ListingID,
			BuyerAddress:  input.Buyer,
			SellerAddress: input.Seller,
			Quantity:      input.Quantity,
			TotalPrice:    input.TotalPrice,
			Currency:      input.Currency,
			Timestamp:     input.Timestamp,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tx_hash"}, {Name: "chain"}},
			DoNothing: true,
		}).Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}
		if sale.ID == 0 {
			return nil // duplicate delivery
		}
		created = true

		if err := terminalGuard(tx, input.Chain, input.ListingID).
			Updates(map[string]interface{}{
				"status":     schema.ListingStatusCompleted,
				"updated_at": input.Timestamp,
			}).Error; err != nil {
			return fmt.Errorf("failed to complete listing: %w", err)
		}

		// An accepted offer surfaces as a sale to the offeror; close it out
		if err := tx.Model(&schema.Offer{}).
			Where("listing_id = ? AND chain = ? AND offeror_address = ? AND status = ?",
				input.ListingID, input.Chain, input.Buyer, schema.OfferStatusCreated).
			Updates(map[string]interface{}{
				"status":     schema.OfferStatusCompleted,
				"updated_at": input.Timestamp,
			}).Error; err != nil {
			return fmt.Errorf("failed to complete offer: %w", err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// CreateOffer records an offer once per transaction hash
func (s *pgStore) CreateOffer(ctx context.Context, input CreateOfferInput) (bool, error) {
	offer := schema.Offer{
		TxHash:           input.TxHash,
		Chain:            input.Chain,
		ListingID:        input.ListingID,
		OfferorAddress:   input.Offeror,
		QuantityWanted:   input.QuantityWanted,
		TotalOfferAmount: input.TotalOfferAmount,
		Currency:         input.Currency,
		ExpirationTime:   input.ExpirationTime,
		Status:           schema.OfferStatusCreated,
		Timestamp:        input.Timestamp,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tx_hash"}, {Name: "chain"}},
		DoNothing: true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(&offer).Error
	if err != nil {
		return false, fmt.Errorf("failed to create offer: %w", err)
	}
	return offer.ID != 0, nil
}

// CreateBid appends an auction bid
func (s *pgStore) CreateBid(ctx context.Context, input CreateBidInput) error {
	bid := schema.Bid{
		Chain:          input.Chain,
		ListingID:      input.ListingID,
		BidderAddress:  input.Bidder,
		QuantityWanted: input.QuantityWanted,
		PricePerToken:  input.PricePerToken,
		Currency:       input.Currency,
		TxHash:         input.TxHash,
		Timestamp:      input.Timestamp,
	}
	if err := s.db.WithContext(ctx).Create(&bid).Error; err != nil {
		return fmt.Errorf("failed to create bid: %w", err)
	}
	return nil
}

// royaltyAmount computes totalPayout * bps / 10000 in 256-bit integer space
func royaltyAmount(totalPayout string, bps uint32) (string, error) {
	total, ok := new(big.Int).SetString(totalPayout, 10)
	if !ok {
		return "", fmt.Errorf("invalid total payout: %s", totalPayout)
	}
	amount := new(big.Int).Mul(total, big.NewInt(int64(bps)))
	amount.Quo(amount, big.NewInt(10000))
	return amount.String(), nil
}

// CreateRoyaltyPayments records one payment per recipient, skipping
// recipients already recorded for the transaction. The listing reference is
// probed against both the listings and the offers tables; the match is
// recorded but neither lookup is treated as authoritative.
func (s *pgStore) CreateRoyaltyPayments(ctx context.Context, input CreateRoyaltyPaymentsInput) error {
	return s.serializable(ctx, func(tx *gorm.DB) error {
		var saleKind *schema.SaleKind
		var listing schema.Listing
		err := tx.Where("listing_id = ? AND chain = ?", input.ListingID, input.Chain).First(&listing).Error
		switch {
		case err == nil:
			kind := schema.SaleKindListing
			saleKind = &kind
		case errors.Is(err, gorm.ErrRecordNotFound):
			var count int64
			if err := tx.Model(&schema.Offer{}).
				Where("listing_id = ? AND chain = ?", input.ListingID, input.Chain).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to probe offers for royalty: %w", err)
			}
			if count > 0 {
				kind := schema.SaleKindOffer
				saleKind = &kind
			}
		default:
			return fmt.Errorf("failed to probe listing for royalty: %w", err)
		}

		for _, recipient := range input.Recipients {
			amount, err := royaltyAmount(input.TotalPayout, recipient.Bps)
			if err != nil {
				return err
			}
			payment := schema.RoyaltyPayment{
				TxHash:           input.TxHash,
				RecipientAddress: recipient.Recipient,
				Chain:            input.Chain,
				ListingID:        input.ListingID,
				SaleKind:         saleKind,
				Bps:              recipient.Bps,
				Amount:           amount,
				Currency:         input.Currency,
				Timestamp:        input.Timestamp,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "tx_hash"}, {Name: "recipient_address"}},
				DoNothing: true,
			}).Create(&payment).Error; err != nil {
				return fmt.Errorf("failed to create royalty payment: %w", err)
			}
		}
		return nil
	})
}

func (s *pgStore) GetRoyaltyPayments(ctx context.Context, chain domain.Chain, txHash string) ([]schema.RoyaltyPayment, error) {
	var payments []schema.RoyaltyPayment
	err := s.db.WithContext(ctx).
		Where("chain = ? AND tx_hash = ?", chain, txHash).
		Order("recipient_address").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list royalty payments: %w", err)
	}
	return payments, nil
}

// GetImportedContract retrieves an import record by (address, chain)
func (s *pgStore) GetImportedContract(ctx context.Context, contractAddress string, chain domain.Chain) (*schema.ImportedContract, error) {
	var imported schema.ImportedContract
	err := s.db.WithContext(ctx).
		Where("contract_address = ? AND chain = ?", contractAddress, chain).
		First(&imported).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContractNotFound
		}
		return nil, fmt.Errorf("failed to get imported contract: %w", err)
	}
	return &imported, nil
}

// GetImportedContractByJobID retrieves an import record by job ID
func (s *pgStore) GetImportedContractByJobID(ctx context.Context, jobID string) (*schema.ImportedContract, error) {
	var imported schema.ImportedContract
	err := s.db.WithContext(ctx).Where("job_id = ?", jobID).First(&imported).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContractNotFound
		}
		return nil, fmt.Errorf("failed to get imported contract by job: %w", err)
	}
	return &imported, nil
}

// CreateImportedContract creates the import record. The unique
// (address, chain) index rejects a concurrent duplicate submission.
func (s *pgStore) CreateImportedContract(ctx context.Context, input CreateImportedContractInput) (*schema.ImportedContract, error) {
	imported := schema.ImportedContract{
		JobID:           input.JobID,
		ContractAddress: input.ContractAddress,
		Chain:           input.Chain,
		TokenStandard:   input.TokenStandard,
		CreatorAddress:  input.CreatorAddress,
		DeployedAtBlock: input.DeployedAtBlock,
		Status:          schema.ImportStatusImporting,
	}
	if err := s.db.WithContext(ctx).Create(&imported).Error; err != nil {
		return nil, fmt.Errorf("failed to create imported contract: %w", err)
	}
	return &imported, nil
}

// UpdateImportProgress advances last_indexed_block for reporting
func (s *pgStore) UpdateImportProgress(ctx context.Context, contractAddress string, chain domain.Chain, lastBlock uint64) error {
	err := s.db.WithContext(ctx).Model(&schema.ImportedContract{}).
		Where("contract_address = ? AND chain = ?", contractAddress, chain).
		Updates(map[string]interface{}{
			"last_indexed_block": gorm.Expr("GREATEST(last_indexed_block, ?)", lastBlock),
			"updated_at":         gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update import progress: %w", err)
	}
	return nil
}

// FinishImport flips import_finished exactly once
func (s *pgStore) FinishImport(ctx context.Context, contractAddress string, chain domain.Chain) error {
	err := s.db.WithContext(ctx).Model(&schema.ImportedContract{}).
		Where("contract_address = ? AND chain = ? AND import_finished = false", contractAddress, chain).
		Updates(map[string]interface{}{
			"status":          schema.ImportStatusFinished,
			"import_finished": true,
			"updated_at":      gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to finish import: %w", err)
	}
	return nil
}

// FailImport marks the import failed so it can be resubmitted
func (s *pgStore) FailImport(ctx context.Context, contractAddress string, chain domain.Chain) error {
	err := s.db.WithContext(ctx).Model(&schema.ImportedContract{}).
		Where("contract_address = ? AND chain = ? AND import_finished = false", contractAddress, chain).
		Updates(map[string]interface{}{
			"status":     schema.ImportStatusFailed,
			"updated_at": gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark import failed: %w", err)
	}
	return nil
}

// ListFinishedImportedContracts lists finished imports on a chain
func (s *pgStore) ListFinishedImportedContracts(ctx context.Context, chain domain.Chain) ([]schema.ImportedContract, error) {
	var imported []schema.ImportedContract
	err := s.db.WithContext(ctx).
		Where("chain = ? AND import_finished = true", chain).
		Order("contract_address").
		Find(&imported).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list imported contracts: %w", err)
	}
	return imported, nil
}

// GetListingsByStatus pages listings for the query surface
func (s *pgStore) GetListingsByStatus(ctx context.Context, chain domain.Chain, status schema.ListingStatus, limit int, offset int) ([]schema.Listing, int64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Listing{}).
		Where("chain = ? AND status = ?", chain, status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	var listings []schema.Listing
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&listings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, total, nil
}

// GetTokenActivity unions transfer, listing, sale and offer rows for a token,
// newest first. The listing join maps sales/offers back to the token they
// reference.
func (s *pgStore) GetTokenActivity(ctx context.Context, contractAddress string, chain domain.Chain, tokenNumber string, limit int) ([]ActivityEntry, error) {
	var entries []ActivityEntry
	err := s.db.WithContext(ctx).Raw(`
		SELECT 'transfer' AS activity_type, tx_hash, from_address, to_address,
		       quantity::text AS quantity, '0' AS price, timestamp
		FROM transfer_events
		WHERE contract_address = ? AND chain = ? AND token_number = ?
		UNION ALL
		SELECT 'listing', '', token_owner, '', quantity::text,
		       buyout_price_per_token::text, created_at
		FROM listings
		WHERE contract_address = ? AND chain = ? AND token_number = ?
		UNION ALL
		SELECT 'sale', s.tx_hash, s.seller_address, s.buyer_address,
		       s.quantity::text, s.total_price::text, s.timestamp
		FROM sales s
		JOIN listings l ON l.listing_id = s.listing_id AND l.chain = s.chain
		WHERE l.contract_address = ? AND l.chain = ? AND l.token_number = ?
		UNION ALL
		SELECT 'offer', o.tx_hash, o.offeror_address, '',
		       o.quantity_wanted::text, o.total_offer_amount::text, o.timestamp
		FROM offers o
		JOIN listings l ON l.listing_id = o.listing_id AND l.chain = o.chain
		WHERE l.contract_address = ? AND l.chain = ? AND l.token_number = ?
		ORDER BY timestamp DESC
		LIMIT ?`,
		contractAddress, chain, tokenNumber,
		contractAddress, chain, tokenNumber,
		contractAddress, chain, tokenNumber,
		contractAddress, chain, tokenNumber,
		limit,
	).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query token activity: %w", err)
	}
	return entries, nil
}
