package live

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/mintstream/marketplace-indexer/internal/backfill"
	"github.com/mintstream/marketplace-indexer/internal/domain"
	ethclient "github.com/mintstream/marketplace-indexer/internal/ethereum"
	"github.com/mintstream/marketplace-indexer/internal/logger"
	"github.com/mintstream/marketplace-indexer/internal/store"
)

// Follower tails new block headers and reconciles each block's logs as it
// arrives. It shares the backfill engine's range processing, so a gap between
// the checkpoint and the incoming head (missed heads during a hiccup) is
// replayed the same way a restart replays a chunk.
//
// Reconnection is crash-only: a broken subscription surfaces as an error
// wrapping domain.ErrConnectionLost and the process restarts from the
// persisted checkpoint.
type Follower struct {
	streamID      string
	chain         domain.Chain
	coreContracts []string
	client        ethclient.Client
	store         store.Store
	engine        *backfill.Engine
}

// NewFollower builds a follower over the given engine. coreContracts is the
// fixed part of the tracked set (marketplace plus configured collections);
// finished imports are re-read from the store on every head so a collection
// imported while the indexer runs is picked up without a restart.
func NewFollower(streamID string, chain domain.Chain, coreContracts []string, client ethclient.Client, st store.Store, engine *backfill.Engine) *Follower {
	return &Follower{
		streamID:      streamID,
		chain:         chain,
		coreContracts: coreContracts,
		client:        client,
		store:         st,
		engine:        engine,
	}
}

// Run subscribes to new heads and processes blocks until the context is
// cancelled or the subscription breaks
func (f *Follower) Run(ctx context.Context) error {
	heads := make(chan *types.Header)
	sub, err := f.client.SubscribeNewHead(ctx, heads)
	if err != nil {
		return fmt.Errorf("%w: failed to subscribe to new heads: %v", domain.ErrConnectionLost, err)
	}
	defer sub.Unsubscribe()

	logger.InfoCtx(ctx, "Following chain head", zap.String("streamID", f.streamID))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("%w: head subscription failed: %v", domain.ErrConnectionLost, err)
		case head := <-heads:
			if err := f.processHead(ctx, head.Number.Uint64()); err != nil {
				return err
			}
		}
	}
}

func (f *Follower) processHead(ctx context.Context, headBlock uint64) error {
	checkpoint, err := f.store.GetCheckpoint(ctx, f.streamID)
	if err != nil {
		return fmt.Errorf("failed to read checkpoint: %w", err)
	}

	from := headBlock
	if checkpoint > 0 && checkpoint < headBlock {
		from = checkpoint + 1
	}
	if checkpoint >= headBlock {
		// Stale or duplicate head; the range was already processed
		return nil
	}

	contracts, err := f.trackedContracts(ctx)
	if err != nil {
		return err
	}
	f.engine.SetContracts(contracts)

	if err := f.engine.ProcessRange(ctx, from, headBlock); err != nil {
		return fmt.Errorf("failed to process blocks %d-%d: %w", from, headBlock, err)
	}

	if err := f.store.SaveCheckpoint(ctx, f.streamID, headBlock); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

// trackedContracts rebuilds the contract set from the fixed core plus the
// finished imports currently in the store
func (f *Follower) trackedContracts(ctx context.Context) ([]string, error) {
	imported, err := f.store.ListFinishedImportedContracts(ctx, f.chain)
	if err != nil {
		return nil, fmt.Errorf("failed to list imported contracts: %w", err)
	}

	contracts := append([]string{}, f.coreContracts...)
	for _, record := range imported {
		contracts = append(contracts, record.ContractAddress)
	}
	return contracts, nil
}
