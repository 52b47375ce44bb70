package live_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintstream/marketplace-indexer/internal/backfill"
	"github.com/mintstream/marketplace-indexer/internal/domain"
	ethclient "github.com/mintstream/marketplace-indexer/internal/ethereum"
	"github.com/mintstream/marketplace-indexer/internal/live"
	"github.com/mintstream/marketplace-indexer/internal/logger"
	"github.com/mintstream/marketplace-indexer/internal/mocks"
	"github.com/mintstream/marketplace-indexer/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// fakeSubscription satisfies ethereum.Subscription for driving the follower
type fakeSubscription struct {
	errs chan error
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{errs: make(chan error, 1)}
}

func (s *fakeSubscription) Unsubscribe()      {}
func (s *fakeSubscription) Err() <-chan error { return s.errs }

const (
	testMarketplaceAddress = "0x1111111111111111111111111111111111111111"
	testImportedAddress    = "0x2222222222222222222222222222222222222222"
)

type nopSink struct{}

func (nopSink) Process(context.Context, *domain.Event) error { return nil }

func setupFollower(t *testing.T) (*live.Follower, *mocks.MockClient, *mocks.MockStore, chan<- *types.Header, *fakeSubscription) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	st := mocks.NewMockStore(ctrl)

	engine := backfill.NewEngine(
		backfill.Config{StreamID: "core:eip155:1", ChunkSize: 100},
		domain.ChainEthereumMainnet,
		client,
		ethclient.NewDecoder(domain.ChainEthereumMainnet),
		st,
		nopSink{},
	)
	follower := live.NewFollower("core:eip155:1", domain.ChainEthereumMainnet,
		[]string{testMarketplaceAddress}, client, st, engine)

	sub := newFakeSubscription()
	heads := make(chan *types.Header)
	client.EXPECT().SubscribeNewHead(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ch chan<- *types.Header) (ethereum.Subscription, error) {
			go func() {
				for h := range heads {
					ch <- h
				}
			}()
			return sub, nil
		})

	return follower, client, st, heads, sub
}

func TestFollowerProcessesNewHeads(t *testing.T) {
	follower, client, st, heads, _ := setupFollower(t)

	processed := make(chan struct{})
	st.EXPECT().GetCheckpoint(gomock.Any(), "core:eip155:1").Return(uint64(100), nil)
	st.EXPECT().ListFinishedImportedContracts(gomock.Any(), domain.ChainEthereumMainnet).
		Return(nil, nil)
	client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
			// missed heads are caught up from the checkpoint
			assert.Equal(t, uint64(101), query.FromBlock.Uint64())
			assert.Equal(t, uint64(103), query.ToBlock.Uint64())
			return nil, nil
		})
	st.EXPECT().SaveCheckpoint(gomock.Any(), "core:eip155:1", uint64(103)).
		DoAndReturn(func(context.Context, string, uint64) error {
			close(processed)
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- follower.Run(ctx) }()

	heads <- &types.Header{Number: big.NewInt(103)}

	select {
	case <-processed:
	case <-time.After(5 * time.Second):
		t.Fatal("head was not processed")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestFollowerIgnoresStaleHeads(t *testing.T) {
	follower, _, st, heads, _ := setupFollower(t)

	checked := make(chan struct{})
	st.EXPECT().GetCheckpoint(gomock.Any(), "core:eip155:1").
		DoAndReturn(func(context.Context, string) (uint64, error) {
			defer close(checked)
			return uint64(200), nil
		})
	// no FilterLogs or SaveCheckpoint expected

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- follower.Run(ctx) }()

	heads <- &types.Header{Number: big.NewInt(150)}

	select {
	case <-checked:
	case <-time.After(5 * time.Second):
		t.Fatal("head was not inspected")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestFollowerTracksNewlyImportedContracts(t *testing.T) {
	follower, client, st, heads, _ := setupFollower(t)

	processed := make(chan struct{})
	gomock.InOrder(
		st.EXPECT().GetCheckpoint(gomock.Any(), "core:eip155:1").Return(uint64(100), nil),
		st.EXPECT().ListFinishedImportedContracts(gomock.Any(), domain.ChainEthereumMainnet).
			Return(nil, nil),
		client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
				assert.Equal(t, []common.Address{common.HexToAddress(testMarketplaceAddress)}, query.Addresses)
				return nil, nil
			}),
		st.EXPECT().SaveCheckpoint(gomock.Any(), "core:eip155:1", uint64(101)).Return(nil),
		// An import finishes between heads; the next head picks it up
		st.EXPECT().GetCheckpoint(gomock.Any(), "core:eip155:1").Return(uint64(101), nil),
		st.EXPECT().ListFinishedImportedContracts(gomock.Any(), domain.ChainEthereumMainnet).
			Return([]schema.ImportedContract{{ContractAddress: testImportedAddress}}, nil),
		client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
				assert.Equal(t, []common.Address{
					common.HexToAddress(testMarketplaceAddress),
					common.HexToAddress(testImportedAddress),
				}, query.Addresses)
				return nil, nil
			}),
		st.EXPECT().SaveCheckpoint(gomock.Any(), "core:eip155:1", uint64(102)).
			DoAndReturn(func(context.Context, string, uint64) error {
				close(processed)
				return nil
			}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- follower.Run(ctx) }()

	heads <- &types.Header{Number: big.NewInt(101)}
	heads <- &types.Header{Number: big.NewInt(102)}

	select {
	case <-processed:
	case <-time.After(5 * time.Second):
		t.Fatal("heads were not processed")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestFollowerSurfacesSubscriptionLoss(t *testing.T) {
	follower, _, _, _, sub := setupFollower(t)

	done := make(chan error, 1)
	go func() { done <- follower.Run(context.Background()) }()

	sub.errs <- errors.New("websocket closed")

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConnectionLost)
	case <-time.After(5 * time.Second):
		t.Fatal("follower did not exit on subscription error")
	}
}
