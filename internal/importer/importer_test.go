package importer_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/mintstream/marketplace-indexer/internal/domain"
	"github.com/mintstream/marketplace-indexer/internal/importer"
	"github.com/mintstream/marketplace-indexer/internal/logger"
	"github.com/mintstream/marketplace-indexer/internal/mocks"
	"github.com/mintstream/marketplace-indexer/internal/notify"
	"github.com/mintstream/marketplace-indexer/internal/store"
	"github.com/mintstream/marketplace-indexer/internal/store/schema"
)

var (
	testCollection = domain.NormalizeAddress("0x4efb5a0a2a0c71c5214b3d2f4b3a475ac4184d9c")
	testCreator    = domain.NormalizeAddress("0x9b1f7f645351af3631a656421ed2e40f2802e6c0")
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

type testMocks struct {
	client    *mocks.MockClient
	store     *mocks.MockStore
	publisher *mocks.MockPublisher
	imp       *importer.Importer
}

type discardSink struct{}

func (discardSink) Process(_ context.Context, _ *domain.Event) error { return nil }

func setupTest(t *testing.T) *testMocks {
	ctrl := gomock.NewController(t)
	m := &testMocks{
		client:    mocks.NewMockClient(ctrl),
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
	}
	m.imp = importer.New(context.Background(), importer.Config{
		ChunkSize: 1000,
	}, domain.ChainEthereumMainnet, m.client, m.store, discardSink{}, m.publisher)
	return m
}

func TestSubmitRejectsUnsupportedContract(t *testing.T) {
	m := setupTest(t)
	defer m.imp.Shutdown()
	ctx := context.Background()

	m.store.EXPECT().
		GetImportedContract(ctx, testCollection, domain.ChainEthereumMainnet).
		Return(nil, domain.ErrContractNotFound)
	m.client.EXPECT().
		SupportsInterface(ctx, testCollection, domain.InterfaceIDERC721).
		Return(false, nil)
	m.client.EXPECT().
		SupportsInterface(ctx, testCollection, domain.InterfaceIDERC1155).
		Return(false, nil)

	record, err := m.imp.Submit(ctx, testCollection)
	assert.ErrorIs(t, err, domain.ErrUnsupportedContract)
	assert.Nil(t, record)
}

func TestSubmitReturnsExistingRecord(t *testing.T) {
	m := setupTest(t)
	defer m.imp.Shutdown()
	ctx := context.Background()

	existing := &schema.ImportedContract{
		JobID:           "existing-job",
		ContractAddress: testCollection,
		Chain:           domain.ChainEthereumMainnet,
		ImportFinished:  true,
	}
	m.store.EXPECT().
		GetImportedContract(ctx, testCollection, domain.ChainEthereumMainnet).
		Return(existing, nil)

	record, err := m.imp.Submit(ctx, testCollection)
	assert.NoError(t, err)
	assert.Equal(t, existing, record)
}

func TestSubmitRunsImportToCompletion(t *testing.T) {
	m := setupTest(t)
	ctx := context.Background()

	m.store.EXPECT().
		GetImportedContract(ctx, testCollection, domain.ChainEthereumMainnet).
		Return(nil, domain.ErrContractNotFound)
	m.client.EXPECT().
		SupportsInterface(ctx, testCollection, domain.InterfaceIDERC721).
		Return(true, nil)
	m.client.EXPECT().
		DeploymentBlock(ctx, testCollection, uint64(0)).
		Return(uint64(120), nil)
	m.client.EXPECT().
		ContractOwner(ctx, testCollection).
		Return(testCreator, nil)

	record := &schema.ImportedContract{
		JobID:           "job-1",
		ContractAddress: testCollection,
		Chain:           domain.ChainEthereumMainnet,
		TokenStandard:   domain.StandardERC721,
		CreatorAddress:  testCreator,
		DeployedAtBlock: 120,
	}
	m.store.EXPECT().
		CreateImportedContract(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreateImportedContractInput) (*schema.ImportedContract, error) {
			assert.Equal(t, testCollection, input.ContractAddress)
			assert.Equal(t, domain.StandardERC721, input.TokenStandard)
			assert.Equal(t, testCreator, input.CreatorAddress)
			assert.Equal(t, uint64(120), input.DeployedAtBlock)
			assert.NotEmpty(t, input.JobID)
			return record, nil
		})

	streamID := importer.StreamID(domain.ChainEthereumMainnet, testCollection)
	m.store.EXPECT().
		GetImportedContractByJobID(gomock.Any(), record.JobID).
		Return(record, nil)
	m.client.EXPECT().
		BlockNumber(gomock.Any()).
		Return(uint64(150), nil)
	m.store.EXPECT().
		GetCheckpoint(gomock.Any(), streamID).
		Return(uint64(0), nil)
	m.client.EXPECT().
		FilterLogs(gomock.Any(), gomock.Any()).
		Return(nil, nil)
	m.store.EXPECT().
		SaveCheckpoint(gomock.Any(), streamID, uint64(150)).
		Return(nil)
	m.store.EXPECT().
		UpdateImportProgress(gomock.Any(), testCollection, domain.ChainEthereumMainnet, uint64(150)).
		Return(nil)
	m.store.EXPECT().
		FinishImport(gomock.Any(), testCollection, domain.ChainEthereumMainnet).
		Return(nil)
	m.publisher.EXPECT().
		Publish(gomock.Any(), notify.SubjectImportFinished, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, payload interface{}) error {
			notification, ok := payload.(importer.ImportFinishedNotification)
			assert.True(t, ok)
			assert.Equal(t, record.JobID, notification.JobID)
			assert.Equal(t, uint64(150), notification.LastBlock)
			return nil
		})

	submitted, err := m.imp.Submit(ctx, testCollection)
	assert.NoError(t, err)
	assert.Equal(t, record.JobID, submitted.JobID)

	m.imp.Shutdown()
}

func TestSubmitFallsBackToDeployerWhenOwnerIsZero(t *testing.T) {
	m := setupTest(t)
	ctx := context.Background()

	m.store.EXPECT().
		GetImportedContract(ctx, testCollection, domain.ChainEthereumMainnet).
		Return(nil, domain.ErrContractNotFound)
	m.client.EXPECT().
		SupportsInterface(ctx, testCollection, domain.InterfaceIDERC721).
		Return(false, nil)
	m.client.EXPECT().
		SupportsInterface(ctx, testCollection, domain.InterfaceIDERC1155).
		Return(true, nil)
	m.client.EXPECT().
		DeploymentBlock(ctx, testCollection, uint64(0)).
		Return(uint64(300), nil)
	m.client.EXPECT().
		ContractOwner(ctx, testCollection).
		Return(domain.ZeroAddress, nil)
	m.client.EXPECT().
		ContractDeployer(ctx, testCollection, uint64(0)).
		Return(testCreator, nil)

	record := &schema.ImportedContract{
		JobID:           "job-2",
		ContractAddress: testCollection,
		Chain:           domain.ChainEthereumMainnet,
		TokenStandard:   domain.StandardERC1155,
		CreatorAddress:  testCreator,
		DeployedAtBlock: 300,
	}
	m.store.EXPECT().
		CreateImportedContract(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreateImportedContractInput) (*schema.ImportedContract, error) {
			assert.Equal(t, testCreator, input.CreatorAddress)
			assert.Equal(t, domain.StandardERC1155, input.TokenStandard)
			assert.NotEmpty(t, input.JobID)
			return record, nil
		})

	m.store.EXPECT().
		GetImportedContractByJobID(gomock.Any(), record.JobID).
		Return(record, nil)
	m.client.EXPECT().
		BlockNumber(gomock.Any()).
		Return(uint64(0), errors.New("rpc down"))
	m.store.EXPECT().
		FailImport(gomock.Any(), testCollection, domain.ChainEthereumMainnet).
		Return(nil)

	submitted, err := m.imp.Submit(ctx, testCollection)
	assert.NoError(t, err)
	assert.Equal(t, record.JobID, submitted.JobID)

	m.imp.Shutdown()
}

func TestStatusLooksUpByJobID(t *testing.T) {
	m := setupTest(t)
	defer m.imp.Shutdown()
	ctx := context.Background()

	record := &schema.ImportedContract{JobID: "job-3", ContractAddress: testCollection}
	m.store.EXPECT().
		GetImportedContractByJobID(ctx, "job-3").
		Return(record, nil)

	got, err := m.imp.Status(ctx, "job-3")
	assert.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestStatusUnknownJob(t *testing.T) {
	m := setupTest(t)
	defer m.imp.Shutdown()
	ctx := context.Background()

	m.store.EXPECT().
		GetImportedContractByJobID(ctx, "no-such-job").
		Return(nil, domain.ErrContractNotFound)

	got, err := m.imp.Status(ctx, "no-such-job")
	assert.ErrorIs(t, err, domain.ErrContractNotFound)
	assert.Nil(t, got)
}
