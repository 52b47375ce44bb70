package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mintstream/marketplace-indexer/internal/backfill"
	"github.com/mintstream/marketplace-indexer/internal/domain"
	ethclient "github.com/mintstream/marketplace-indexer/internal/ethereum"
	"github.com/mintstream/marketplace-indexer/internal/logger"
	"github.com/mintstream/marketplace-indexer/internal/notify"
	"github.com/mintstream/marketplace-indexer/internal/store"
	"github.com/mintstream/marketplace-indexer/internal/store/schema"
)

const (
	defaultWorkerPoolSize  = 4
	defaultWorkerQueueSize = 64
	creatorProbeRetries    = 3
)

// Config holds the importer parameters
type Config struct {
	// KnownFloorBlock bounds the deployment-block binary search from below
	KnownFloorBlock uint64
	// ChunkSize bounds blocks per eth_getLogs call during import backfill
	ChunkSize uint64
	// WorkerPoolSize caps concurrent import backfills
	WorkerPoolSize int
	// WorkerQueueSize caps queued import jobs
	WorkerQueueSize int
}

// ImportFinishedNotification is published on import.finished
type ImportFinishedNotification struct {
	JobID           string       `json:"job_id"`
	Chain           domain.Chain `json:"chain"`
	ContractAddress string       `json:"contract_address"`
	LastBlock       uint64       `json:"last_block"`
}

// Importer runs the collection import state machine: classify the contract,
// locate its deployment block, resolve a creator, then backfill its stream
// from deployment to head. Imports for different contracts run concurrently;
// each touches its own checkpoint row.
type Importer struct {
	config    Config
	chain     domain.Chain
	client    ethclient.Client
	store     store.Store
	sink      backfill.EventSink
	publisher notify.Publisher
	pool      pond.Pool

	// baseCtx outlives the submitting request; import backfills are owned by
	// the process, not the caller
	baseCtx context.Context
}

func New(ctx context.Context, config Config, chain domain.Chain, client ethclient.Client, st store.Store, sink backfill.EventSink, publisher notify.Publisher) *Importer {
	workerPoolSize := config.WorkerPoolSize
	if workerPoolSize == 0 {
		workerPoolSize = defaultWorkerPoolSize
	}
	workerQueueSize := config.WorkerQueueSize
	if workerQueueSize == 0 {
		workerQueueSize = defaultWorkerQueueSize
	}

	return &Importer{
		config:    config,
		chain:     chain,
		client:    client,
		store:     st,
		sink:      sink,
		publisher: publisher,
		pool: pond.NewPool(
			workerPoolSize,
			pond.WithQueueSize(workerQueueSize),
			pond.WithContext(ctx),
		),
		baseCtx: ctx,
	}
}

// StreamID returns the checkpoint stream for an imported contract
func StreamID(chain domain.Chain, contractAddress string) string {
	return fmt.Sprintf("import:%s:%s", chain, contractAddress)
}

// Submit starts an import for a contract, or returns the existing record.
// Submission is idempotent at the (contractAddress, chain) level. Contracts
// matching neither token interface are rejected without creating a record.
func (i *Importer) Submit(ctx context.Context, contractAddress string) (*schema.ImportedContract, error) {
	contractAddress = domain.NormalizeAddress(contractAddress)

	existing, err := i.store.GetImportedContract(ctx, contractAddress, i.chain)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrContractNotFound) {
		return nil, err
	}

	standard, err := i.classify(ctx, contractAddress)
	if err != nil {
		return nil, err
	}

	deployedAt, err := i.client.DeploymentBlock(ctx, contractAddress, i.config.KnownFloorBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to locate deployment block: %w", err)
	}

	creator := i.resolveCreator(ctx, contractAddress, i.config.KnownFloorBlock)

	record, err := i.store.CreateImportedContract(ctx, store.CreateImportedContractInput{
		JobID:           uuid.NewString(),
		ContractAddress: contractAddress,
		Chain:           i.chain,
		TokenStandard:   standard,
		CreatorAddress:  creator,
		DeployedAtBlock: deployedAt,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Import submitted",
		zap.String("jobID", record.JobID),
		zap.String("contract", contractAddress),
		zap.String("standard", string(standard)),
		zap.Uint64("deployedAt", deployedAt))

	jobID := record.JobID
	i.pool.SubmitErr(func() error {
		return i.runImport(i.baseCtx, jobID)
	})

	return record, nil
}

// Status returns the import record for a job
func (i *Importer) Status(ctx context.Context, jobID string) (*schema.ImportedContract, error) {
	return i.store.GetImportedContractByJobID(ctx, jobID)
}

// Shutdown waits for in-flight import backfills to finish
func (i *Importer) Shutdown() {
	i.pool.StopAndWait()
}

// classify probes the two token interface IDs via supportsInterface
func (i *Importer) classify(ctx context.Context, contractAddress string) (domain.TokenStandard, error) {
	if ok, err := i.client.SupportsInterface(ctx, contractAddress, domain.InterfaceIDERC721); err != nil {
		return "", err
	} else if ok {
		return domain.StandardERC721, nil
	}

	if ok, err := i.client.SupportsInterface(ctx, contractAddress, domain.InterfaceIDERC1155); err != nil {
		return "", err
	} else if ok {
		return domain.StandardERC1155, nil
	}

	return "", domain.ErrUnsupportedContract
}

// resolveCreator probes owner() with bounded retries, falls back to the
// deployer from the creation transaction, and finally to the zero address.
// Creator resolution is best-effort and never blocks an import.
func (i *Importer) resolveCreator(ctx context.Context, contractAddress string, minBlock uint64) string {
	var owner string
	err := backoff.Retry(func() error {
		var err error
		owner, err = i.client.ContractOwner(ctx, contractAddress)
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), creatorProbeRetries), ctx))
	if err == nil && !domain.IsZeroAddress(owner) {
		return owner
	}

	deployer, err := i.client.ContractDeployer(ctx, contractAddress, minBlock)
	if err == nil {
		return deployer
	}

	logger.WarnCtx(ctx, "Creator resolution failed, using zero address",
		zap.String("contract", contractAddress),
		zap.Error(err))
	return domain.ZeroAddress
}

// runImport backfills the contract's stream from deployment to the current
// head. It runs on the worker pool, detached from the submitting request.
func (i *Importer) runImport(ctx context.Context, jobID string) error {
	record, err := i.lookupJob(ctx, jobID)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("jobID", jobID))
		return err
	}

	head, err := i.client.BlockNumber(ctx)
	if err != nil {
		return i.failImport(ctx, record, fmt.Errorf("failed to get chain head: %w", err))
	}

	engine := backfill.NewEngine(backfill.Config{
		StreamID:   StreamID(record.Chain, record.ContractAddress),
		Contracts:  []string{record.ContractAddress},
		StartBlock: record.DeployedAtBlock,
		ChunkSize:  i.config.ChunkSize,
	}, record.Chain, i.client, ethclient.NewDecoder(record.Chain), i.store, i.sink)

	last, err := engine.Run(ctx, head)
	if err != nil {
		return i.failImport(ctx, record, err)
	}

	if err := i.store.UpdateImportProgress(ctx, record.ContractAddress, record.Chain, last); err != nil {
		return i.failImport(ctx, record, err)
	}
	if err := i.store.FinishImport(ctx, record.ContractAddress, record.Chain); err != nil {
		return i.failImport(ctx, record, err)
	}

	logger.InfoCtx(ctx, "Import finished",
		zap.String("jobID", record.JobID),
		zap.String("contract", record.ContractAddress),
		zap.Uint64("lastBlock", last))

	if i.publisher != nil {
		notification := ImportFinishedNotification{
			JobID:           record.JobID,
			Chain:           record.Chain,
			ContractAddress: record.ContractAddress,
			LastBlock:       last,
		}
		if err := i.publisher.Publish(ctx, notify.SubjectImportFinished, notification); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("jobID", record.JobID))
		}
	}
	return nil
}

// lookupJob retries until the import record created by the submitting
// transaction is visible. The record is guaranteed to exist, so the retry is
// unbounded, limited only by the worker context.
func (i *Importer) lookupJob(ctx context.Context, jobID string) (*schema.ImportedContract, error) {
	var record *schema.ImportedContract
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0 // retry until the context is cancelled
	err := backoff.Retry(func() error {
		var err error
		record, err = i.store.GetImportedContractByJobID(ctx, jobID)
		return err
	}, backoff.WithContext(bo, ctx))
	return record, err
}

func (i *Importer) failImport(ctx context.Context, record *schema.ImportedContract, cause error) error {
	logger.ErrorCtx(ctx, cause,
		zap.String("jobID", record.JobID),
		zap.String("contract", record.ContractAddress))

	if err := i.store.FailImport(ctx, record.ContractAddress, record.Chain); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("jobID", record.JobID))
	}
	return cause
}
