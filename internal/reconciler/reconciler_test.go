package reconciler_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintstream/marketplace-indexer/internal/adapter"
	"github.com/mintstream/marketplace-indexer/internal/domain"
	"github.com/mintstream/marketplace-indexer/internal/logger"
	"github.com/mintstream/marketplace-indexer/internal/metadata"
	"github.com/mintstream/marketplace-indexer/internal/mocks"
	"github.com/mintstream/marketplace-indexer/internal/notify"
	"github.com/mintstream/marketplace-indexer/internal/reconciler"
	"github.com/mintstream/marketplace-indexer/internal/store"
	"github.com/mintstream/marketplace-indexer/internal/store/schema"
)

const (
	testMarketplace = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	testCollection  = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
	testAlice       = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	testBob         = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
)

var testTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

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

type testMocks struct {
	ctrl      *gomock.Controller
	client    *mocks.MockClient
	store     *mocks.MockStore
	resolver  *mocks.MockMetadataResolver
	publisher *mocks.MockPublisher
	rec       *reconciler.Reconciler
}

func setupTest(t *testing.T) *testMocks {
	ctrl := gomock.NewController(t)

	m := &testMocks{
		ctrl:      ctrl,
		client:    mocks.NewMockClient(ctrl),
		store:     mocks.NewMockStore(ctrl),
		resolver:  mocks.NewMockMetadataResolver(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
	}
	m.rec = reconciler.New(
		domain.ChainEthereumMainnet,
		testMarketplace,
		m.client,
		m.store,
		m.resolver,
		m.publisher,
		adapter.NewJSON(),
	)
	return m
}

func transferEvent(from, to string) *domain.Event {
	return &domain.Event{
		Kind:            domain.EventKindTransfer,
		Chain:           domain.ChainEthereumMainnet,
		ContractAddress: testCollection,
		TxHash:          "0xaaa",
		TxIndex:         1,
		LogIndex:        2,
		BlockNumber:     100,
		Timestamp:       testTime,
		Transfer: &domain.TransferPayload{
			Standard:    domain.StandardERC721,
			FromAddress: from,
			ToAddress:   to,
			Entries:     []domain.TransferEntry{{TokenNumber: "42", Quantity: "1"}},
		},
	}
}

func TestTransferAppliedThroughLedger(t *testing.T) {
	m := setupTest(t)
	event := transferEvent(testAlice, testBob)

	m.store.EXPECT().ApplyTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.ApplyTransferInput) (bool, error) {
			assert.Equal(t, "0xaaa", input.Event.TxHash)
			assert.Equal(t, testAlice, input.Transfer.FromAddress)
			assert.Nil(t, input.ItemSeed)
			assert.NotEmpty(t, input.Raw)
			return true, nil
		})

	require.NoError(t, m.rec.Process(context.Background(), event))
}

func TestMintResolvesMetadataSeed(t *testing.T) {
	m := setupTest(t)
	event := transferEvent(domain.ZeroAddress, testBob)

	imageURI := "ipfs://Qm/42.png"
	m.resolver.EXPECT().
		Resolve(gomock.Any(), testCollection, "42", domain.StandardERC721).
		Return(metadata.Metadata{Name: "Genesis #42", ImageURI: &imageURI})

	m.store.EXPECT().ApplyTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.ApplyTransferInput) (bool, error) {
			require.NotNil(t, input.ItemSeed)
			assert.Equal(t, "Genesis #42", input.ItemSeed.Name)
			assert.Equal(t, testBob, input.ItemSeed.CreatorAddress)
			return true, nil
		})

	require.NoError(t, m.rec.Process(context.Background(), event))
}

func TestListingUpdatedRefetchesAuthoritativeState(t *testing.T) {
	m := setupTest(t)

	snapshot := &domain.ListingSnapshot{
		ListingID:     "5",
		TokenOwner:    testAlice,
		AssetContract: testCollection,
		TokenNumber:   "42",
		Quantity:      "2",
		Currency:      testBob,
		BuyoutPrice:   "900000",
		ReservePrice:  "0",
		StartTime:     testTime,
		EndTime:       domain.MaxTimestamp,
		ListingType:   domain.ListingTypeDirect,
	}

	m.client.EXPECT().
		MarketplaceListing(gomock.Any(), testMarketplace, "5").
		Return(snapshot, nil)
	m.store.EXPECT().
		RefreshListing(gomock.Any(), domain.ChainEthereumMainnet, *snapshot, testTime).
		Return(nil)

	err := m.rec.Process(context.Background(), &domain.Event{
		Kind:       domain.EventKindListingUpdated,
		Chain:      domain.ChainEthereumMainnet,
		Timestamp:  testTime,
		ListingRef: &domain.ListingRefPayload{ListingID: "5", Actor: testAlice},
	})
	require.NoError(t, err)
}

func TestListingUpdatedSkipsWhenGoneOnChain(t *testing.T) {
	m := setupTest(t)

	m.client.EXPECT().
		MarketplaceListing(gomock.Any(), testMarketplace, "5").
		Return(nil, domain.ErrListingNotFound)

	err := m.rec.Process(context.Background(), &domain.Event{
		Kind:       domain.EventKindListingUpdated,
		Chain:      domain.ChainEthereumMainnet,
		Timestamp:  testTime,
		ListingRef: &domain.ListingRefPayload{ListingID: "5", Actor: testAlice},
	})
	require.NoError(t, err)
}

func TestListingRemovedCancels(t *testing.T) {
	m := setupTest(t)

	m.store.EXPECT().
		CancelListing(gomock.Any(), domain.ChainEthereumMainnet, "5", testTime).
		Return(nil)

	err := m.rec.Process(context.Background(), &domain.Event{
		Kind:       domain.EventKindListingRemoved,
		Chain:      domain.ChainEthereumMainnet,
		Timestamp:  testTime,
		ListingRef: &domain.ListingRefPayload{ListingID: "5", Actor: testAlice},
	})
	require.NoError(t, err)
}

func saleEvent() *domain.Event {
	return &domain.Event{
		Kind:      domain.EventKindNewSale,
		Chain:     domain.ChainEthereumMainnet,
		TxHash:    "0xsale",
		Timestamp: testTime,
		Sale: &domain.SalePayload{
			ListingID:      "5",
			AssetContract:  testCollection,
			Lister:         testAlice,
			Buyer:          testBob,
			QuantityBought: "2",
			TotalPricePaid: "1800000",
		},
	}
}

func TestNewSaleCreatesAndPublishes(t *testing.T) {
	m := setupTest(t)

	m.store.EXPECT().
		GetListing(gomock.Any(), domain.ChainEthereumMainnet, "5").
		Return(&schema.Listing{Currency: "0xWETH"}, nil)
	m.store.EXPECT().CreateSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreateSaleInput) (bool, error) {
			assert.Equal(t, "0xsale", input.TxHash)
			assert.Equal(t, testBob, input.Buyer)
			assert.Equal(t, testAlice, input.Seller)
			assert.Equal(t, "0xWETH", input.Currency)
			return true, nil
		})
	m.publisher.EXPECT().
		Publish(gomock.Any(), notify.SubjectSaleCreated, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, payload interface{}) error {
			notification, ok := payload.(reconciler.SaleNotification)
			require.True(t, ok)
			assert.Equal(t, "5", notification.ListingID)
			assert.Equal(t, "1800000", notification.TotalPrice)
			return nil
		})

	require.NoError(t, m.rec.Process(context.Background(), saleEvent()))
}

func TestNewSaleDuplicateNotRepublished(t *testing.T) {
	m := setupTest(t)

	m.store.EXPECT().
		GetListing(gomock.Any(), domain.ChainEthereumMainnet, "5").
		Return(&schema.Listing{Currency: "0xWETH"}, nil)
	m.store.EXPECT().CreateSale(gomock.Any(), gomock.Any()).Return(false, nil)
	// no Publish expected

	require.NoError(t, m.rec.Process(context.Background(), saleEvent()))
}

func TestNewOfferCreatesWithChainExpiration(t *testing.T) {
	m := setupTest(t)

	expiration := testTime.Add(72 * time.Hour)
	m.client.EXPECT().
		MarketplaceOffer(gomock.Any(), testMarketplace, "5", testBob).
		Return(&domain.BidView{
			ListingID:      "5",
			Bidder:         testBob,
			ExpirationTime: expiration,
		}, nil)
	m.store.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreateOfferInput) (bool, error) {
			assert.Equal(t, expiration, input.ExpirationTime)
			assert.Equal(t, "900000", input.TotalOfferAmount)
			return true, nil
		})
	m.client.EXPECT().
		MarketplaceListing(gomock.Any(), testMarketplace, "5").
		Return(nil, domain.ErrListingNotFound)
	m.publisher.EXPECT().
		Publish(gomock.Any(), notify.SubjectOfferCreated, gomock.Any()).
		Return(nil)

	err := m.rec.Process(context.Background(), &domain.Event{
		Kind:      domain.EventKindNewOffer,
		Chain:     domain.ChainEthereumMainnet,
		TxHash:    "0xoffer",
		Timestamp: testTime,
		Offer: &domain.OfferPayload{
			ListingID:        "5",
			Offeror:          testBob,
			ListingType:      domain.ListingTypeDirect,
			QuantityWanted:   "1",
			TotalOfferAmount: "900000",
			Currency:         "0xWETH",
			ExpirationTime:   domain.MaxTimestamp,
		},
	})
	require.NoError(t, err)
}

func TestAuctionOfferRecordedAsBid(t *testing.T) {
	m := setupTest(t)

	m.client.EXPECT().
		MarketplaceWinningBid(gomock.Any(), testMarketplace, "5").
		Return(&domain.BidView{
			ListingID:     "5",
			Bidder:        testBob,
			PricePerToken: "450000",
		}, nil)
	m.store.EXPECT().CreateBid(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreateBidInput) error {
			assert.Equal(t, testBob, input.Bidder)
			assert.Equal(t, "450000", input.PricePerToken)
			return nil
		})
	m.client.EXPECT().
		MarketplaceListing(gomock.Any(), testMarketplace, "5").
		Return(nil, domain.ErrListingNotFound)

	err := m.rec.Process(context.Background(), &domain.Event{
		Kind:      domain.EventKindNewOffer,
		Chain:     domain.ChainEthereumMainnet,
		TxHash:    "0xbid",
		Timestamp: testTime,
		Offer: &domain.OfferPayload{
			ListingID:        "5",
			Offeror:          testBob,
			ListingType:      domain.ListingTypeAuction,
			QuantityWanted:   "2",
			TotalOfferAmount: "900000",
			Currency:         "0xWETH",
		},
	})
	require.NoError(t, err)
}

func auctionClosedEvent(closer string, cancelled bool) *domain.Event {
	return &domain.Event{
		Kind:      domain.EventKindAuctionClosed,
		Chain:     domain.ChainEthereumMainnet,
		TxHash:    "0xclose",
		Timestamp: testTime,
		AuctionClosed: &domain.AuctionClosedPayload{
			ListingID:      "5",
			Closer:         closer,
			Cancelled:      cancelled,
			AuctionCreator: testAlice,
			WinningBidder:  testBob,
		},
	}
}

func TestAuctionClosedCancelled(t *testing.T) {
	m := setupTest(t)

	m.store.EXPECT().
		CancelListing(gomock.Any(), domain.ChainEthereumMainnet, "5", testTime).
		Return(nil)

	require.NoError(t, m.rec.Process(context.Background(), auctionClosedEvent(testAlice, true)))
}

func TestAuctionClosedByCreator(t *testing.T) {
	m := setupTest(t)

	m.store.EXPECT().
		MarkListingClosedByLister(gomock.Any(), domain.ChainEthereumMainnet, "5", testTime).
		Return(nil)

	require.NoError(t, m.rec.Process(context.Background(), auctionClosedEvent(testAlice, false)))
}

func TestAuctionClosedByWinningBidderSettles(t *testing.T) {
	m := setupTest(t)

	m.store.EXPECT().
		GetListing(gomock.Any(), domain.ChainEthereumMainnet, "5").
		Return(&schema.Listing{
			ListingID:            "5",
			Quantity:             "3",
			Currency:             "0xWETH",
			ReservePricePerToken: "100000",
		}, nil)
	m.client.EXPECT().
		MarketplaceWinningBid(gomock.Any(), testMarketplace, "5").
		Return(&domain.BidView{Bidder: testBob, PricePerToken: "450000"}, nil)
	m.store.EXPECT().CreateSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreateSaleInput) (bool, error) {
			assert.Equal(t, testBob, input.Buyer)
			assert.Equal(t, testAlice, input.Seller)
			assert.Equal(t, "3", input.Quantity)
			// winning bid price x listed quantity
			assert.Equal(t, "1350000", input.TotalPrice)
			return true, nil
		})
	m.publisher.EXPECT().
		Publish(gomock.Any(), notify.SubjectSaleCreated, gomock.Any()).
		Return(nil)

	require.NoError(t, m.rec.Process(context.Background(), auctionClosedEvent(testBob, false)))
}

func TestRoyaltyPaidPassesThrough(t *testing.T) {
	m := setupTest(t)

	m.store.EXPECT().CreateRoyaltyPayments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreateRoyaltyPaymentsInput) error {
			assert.Equal(t, "5", input.ListingID)
			assert.Equal(t, "1000000", input.TotalPayout)
			require.Len(t, input.Recipients, 2)
			return nil
		})

	err := m.rec.Process(context.Background(), &domain.Event{
		Kind:      domain.EventKindRoyaltyPaid,
		Chain:     domain.ChainEthereumMainnet,
		TxHash:    "0xroyalty",
		Timestamp: testTime,
		Royalty: &domain.RoyaltyPayload{
			ListingID: "5",
			Payer:     testBob,
			Recipients: []domain.RoyaltyRecipient{
				{Recipient: testAlice, Bps: 750},
				{Recipient: testBob, Bps: 250},
			},
			TotalPayout: "1000000",
			Currency:    "0xWETH",
		},
	})
	require.NoError(t, err)
}

func TestPublishFailureDoesNotFailReconciliation(t *testing.T) {
	m := setupTest(t)

	m.store.EXPECT().
		GetListing(gomock.Any(), domain.ChainEthereumMainnet, "5").
		Return(nil, domain.ErrListingNotFound)
	m.store.EXPECT().CreateSale(gomock.Any(), gomock.Any()).Return(true, nil)
	m.publisher.EXPECT().
		Publish(gomock.Any(), notify.SubjectSaleCreated, gomock.Any()).
		Return(errors.New("broker down"))

	require.NoError(t, m.rec.Process(context.Background(), saleEvent()))
}
