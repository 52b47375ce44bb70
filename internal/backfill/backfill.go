package backfill

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/mintstream/marketplace-indexer/internal/domain"
	ethclient "github.com/mintstream/marketplace-indexer/internal/ethereum"
	"github.com/mintstream/marketplace-indexer/internal/logger"
	"github.com/mintstream/marketplace-indexer/internal/store"
)

// EventSink consumes decoded events. Implementations must be idempotent: a
// chunk whose reconciliation fails partway is reprocessed wholesale after
// restart.
type EventSink interface {
	Process(ctx context.Context, event *domain.Event) error
}

// Chunk is an inclusive block range
type Chunk struct {
	Start uint64
	End   uint64
}

// Chunks splits [from, to] into inclusive sub-ranges of at most chunkSize
// blocks, covering the interval with no gaps and no overlaps
func Chunks(from, to, chunkSize uint64) []Chunk {
	if to < from || chunkSize == 0 {
		return nil
	}

	var chunks []Chunk
	for start := from; start <= to; {
		end := start + chunkSize - 1
		if end > to {
			end = to
		}
		chunks = append(chunks, Chunk{Start: start, End: end})
		if end == to {
			break
		}
		start = end + 1
	}
	return chunks
}

// Config holds the backfill parameters for one stream
type Config struct {
	// StreamID keys the checkpoint row, e.g. "core:eip155:1"
	StreamID string
	// Contracts restricts log queries to the stream's contract set
	Contracts []string
	// StartBlock is where a stream with no checkpoint begins
	StartBlock uint64
	// ChunkSize bounds blocks per eth_getLogs call
	ChunkSize uint64
}

// Engine replays historical logs chunk by chunk, advancing the stream
// checkpoint only after a chunk's reconciliation fully commits
type Engine struct {
	config  Config
	chain   domain.Chain
	client  ethclient.Client
	decoder *ethclient.Decoder
	store   store.Store
	sink    EventSink

	// blockTimes caches header timestamps within a chunk
	blockTimes map[uint64]time.Time
}

func NewEngine(config Config, chain domain.Chain, client ethclient.Client, decoder *ethclient.Decoder, st store.Store, sink EventSink) *Engine {
	return &Engine{
		config:     config,
		chain:      chain,
		client:     client,
		decoder:    decoder,
		store:      st,
		sink:       sink,
		blockTimes: make(map[uint64]time.Time),
	}
}

// SetContracts replaces the contract set for subsequent log queries. Not
// safe to call concurrently with Run or ProcessRange.
func (e *Engine) SetContracts(contracts []string) {
	e.config.Contracts = contracts
}

// Run backfills from the stream checkpoint (or StartBlock) to toBlock.
// Returns the last fully processed block.
func (e *Engine) Run(ctx context.Context, toBlock uint64) (uint64, error) {
	checkpoint, err := e.store.GetCheckpoint(ctx, e.config.StreamID)
	if err != nil {
		return 0, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	from := e.config.StartBlock
	if checkpoint >= from {
		from = checkpoint + 1
	}
	if from > toBlock {
		return checkpoint, nil
	}

	logger.InfoCtx(ctx, "Starting backfill",
		zap.String("streamID", e.config.StreamID),
		zap.Uint64("fromBlock", from),
		zap.Uint64("toBlock", toBlock))

	last := checkpoint
	for _, chunk := range Chunks(from, toBlock, e.config.ChunkSize) {
		if err := ctx.Err(); err != nil {
			return last, err
		}

		if err := e.ProcessRange(ctx, chunk.Start, chunk.End); err != nil {
			return last, fmt.Errorf("failed to process blocks %d-%d: %w", chunk.Start, chunk.End, err)
		}

		if err := e.store.SaveCheckpoint(ctx, e.config.StreamID, chunk.End); err != nil {
			return last, fmt.Errorf("failed to save checkpoint: %w", err)
		}
		last = chunk.End
	}

	logger.InfoCtx(ctx, "Backfill finished",
		zap.String("streamID", e.config.StreamID),
		zap.Uint64("lastBlock", last))
	return last, nil
}

// ProcessRange fetches, decodes and reconciles all logs in [fromBlock,
// toBlock]. The caller owns checkpoint advancement.
func (e *Engine) ProcessRange(ctx context.Context, fromBlock, toBlock uint64) error {
	addresses := make([]common.Address, 0, len(e.config.Contracts))
	for _, contract := range e.config.Contracts {
		addresses = append(addresses, common.HexToAddress(contract))
	}

	logs, err := e.client.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: addresses,
		Topics:    [][]common.Hash{ethclient.EventSignatures()},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch logs: %w", err)
	}

	for _, vLog := range logs {
		if vLog.Removed {
			continue
		}

		event, err := e.decoder.Decode(vLog)
		if err != nil {
			// Malformed data under a known topic is logged and skipped, the
			// same as an unrecognized topic
			logger.WarnCtx(ctx, "Skipping undecodable log",
				zap.String("txHash", vLog.TxHash.Hex()),
				zap.Uint("logIndex", vLog.Index),
				zap.Error(err))
			continue
		}
		if event == nil {
			continue
		}

		timestamp, err := e.blockTime(ctx, vLog)
		if err != nil {
			return err
		}
		event.Timestamp = timestamp

		if err := e.sink.Process(ctx, event); err != nil {
			return fmt.Errorf("failed to reconcile event %s: %w", event.LedgerKey(), err)
		}
	}

	return nil
}

func (e *Engine) blockTime(ctx context.Context, vLog types.Log) (time.Time, error) {
	if t, ok := e.blockTimes[vLog.BlockNumber]; ok {
		return t, nil
	}

	header, err := e.client.HeaderByNumber(ctx, new(big.Int).SetUint64(vLog.BlockNumber))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get header %d: %w", vLog.BlockNumber, err)
	}

	t := time.Unix(int64(header.Time), 0).UTC() //nolint:gosec,G115 // header.Time is a uint64 from geth which is safe to cast
	e.blockTimes[vLog.BlockNumber] = t
	return t, nil
}
