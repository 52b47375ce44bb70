package store

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/mintstream/marketplace-indexer/internal/domain"
	"github.com/mintstream/marketplace-indexer/internal/store/schema"
)

var (
	testOwnerA   = domain.NormalizeAddress("0xaaaa00000000000000000000000000000000aaaa")
	testOwnerB   = domain.NormalizeAddress("0xbbbb00000000000000000000000000000000bbbb")
	testOwnerC   = domain.NormalizeAddress("0xcccc00000000000000000000000000000000cccc")
	testCurrency = domain.NormalizeAddress("0xeeee000000000000000000000000000000000001")
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTransferEvent wraps one transfer log in a fully keyed domain.Event
func buildTransferEvent(contract, txHash string, logIndex uint64, transfer domain.TransferPayload) domain.Event {
	return domain.Event{
		Kind:            domain.EventKindTransfer,
		Chain:           domain.ChainEthereumMainnet,
		ContractAddress: contract,
		TxHash:          txHash,
		TxIndex:         0,
		LogIndex:        logIndex,
		BlockNumber:     1000,
		BlockHash:       "0xblockhash",
		Timestamp:       time.Now().UTC(),
		Transfer:        &transfer,
	}
}

// buildMintInput builds an ApplyTransferInput minting quantity units to owner
func buildMintInput(contract, tokenNumber, owner, quantity, txHash string) ApplyTransferInput {
	transfer := domain.TransferPayload{
		Standard:    domain.StandardERC1155,
		FromAddress: domain.ZeroAddress,
		ToAddress:   owner,
		Entries:     []domain.TransferEntry{{TokenNumber: tokenNumber, Quantity: quantity}},
	}
	raw, _ := json.Marshal(transfer)
	return ApplyTransferInput{
		Event:    buildTransferEvent(contract, txHash, 0, transfer),
		Transfer: transfer,
		ItemSeed: &ItemSeed{
			Standard:       domain.StandardERC1155,
			CreatorAddress: owner,
			Name:           fmt.Sprintf("Test Token #%s", tokenNumber),
		},
		Raw: datatypes.JSON(raw),
	}
}

// buildTransferInput builds an ApplyTransferInput moving quantity units
func buildTransferInput(contract, tokenNumber, from, to, quantity, txHash string, logIndex uint64) ApplyTransferInput {
	transfer := domain.TransferPayload{
		Standard:    domain.StandardERC1155,
		FromAddress: from,
		ToAddress:   to,
		Entries:     []domain.TransferEntry{{TokenNumber: tokenNumber, Quantity: quantity}},
	}
	raw, _ := json.Marshal(transfer)
	return ApplyTransferInput{
		Event:    buildTransferEvent(contract, txHash, logIndex, transfer),
		Transfer: transfer,
		Raw:      datatypes.JSON(raw),
	}
}

// buildListingInput builds a direct listing for an already indexed token
func buildListingInput(contract, tokenNumber, listingID, owner string) CreateListingInput {
	now := time.Now().UTC()
	return CreateListingInput{
		Chain: domain.ChainEthereumMainnet,
		Snapshot: domain.ListingSnapshot{
			ListingID:     listingID,
			TokenOwner:    owner,
			AssetContract: contract,
			TokenNumber:   tokenNumber,
			StartTime:     now,
			EndTime:       now.Add(24 * time.Hour),
			Quantity:      "1",
			Currency:      testCurrency,
			ReservePrice:  "0",
			BuyoutPrice:   "1000000000000000000",
			ListingType:   domain.ListingTypeDirect,
		},
		Timestamp: now,
		Raw:       datatypes.JSON(`{}`),
	}
}

// seedTokenWithListing mints a token and lists it, returning the listing ID
func seedTokenWithListing(t *testing.T, store Store, contract, tokenNumber, listingID string) {
	ctx := context.Background()

	applied, err := store.ApplyTransfer(ctx, buildMintInput(contract, tokenNumber, testOwnerA, "10", fmt.Sprintf("0xmint%s%s", contract, tokenNumber)))
	require.NoError(t, err)
	require.True(t, applied)

	created, err := store.CreateListing(ctx, buildListingInput(contract, tokenNumber, listingID, testOwnerA))
	require.NoError(t, err)
	require.True(t, created)
}

// =============================================================================
// Test: Checkpoints
// =============================================================================

func testCheckpoints(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("unknown stream reads as zero", func(t *testing.T) {
		block, err := store.GetCheckpoint(ctx, "core:eip155:1")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), block)
	})

	t.Run("save and read back", func(t *testing.T) {
		err := store.SaveCheckpoint(ctx, "core:eip155:1", 5000)
		require.NoError(t, err)

		block, err := store.GetCheckpoint(ctx, "core:eip155:1")
		require.NoError(t, err)
		assert.Equal(t, uint64(5000), block)
	})

	t.Run("checkpoint never regresses", func(t *testing.T) {
		require.NoError(t, store.SaveCheckpoint(ctx, "core:eip155:1", 6000))
		require.NoError(t, store.SaveCheckpoint(ctx, "core:eip155:1", 4000))

		block, err := store.GetCheckpoint(ctx, "core:eip155:1")
		require.NoError(t, err)
		assert.Equal(t, uint64(6000), block)
	})

	t.Run("streams are independent", func(t *testing.T) {
		require.NoError(t, store.SaveCheckpoint(ctx, "import:eip155:1:0xdead", 123))

		block, err := store.GetCheckpoint(ctx, "import:eip155:1:0xdead")
		require.NoError(t, err)
		assert.Equal(t, uint64(123), block)

		block, err = store.GetCheckpoint(ctx, "core:eip155:1")
		require.NoError(t, err)
		assert.Equal(t, uint64(6000), block)
	})
}

// =============================================================================
// Test: ApplyTransfer
// =============================================================================

func testApplyTransfer(t *testing.T, store Store) {
	ctx := context.Background()
	contract := domain.NormalizeAddress("0x1111000000000000000000000000000000000001")

	t.Run("mint creates item and ownership", func(t *testing.T) {
		input := buildMintInput(contract, "1", testOwnerA, "10", "0xmint1")
		applied, err := store.ApplyTransfer(ctx, input)
		require.NoError(t, err)
		assert.True(t, applied)

		item, err := store.GetItem(ctx, contract, domain.ChainEthereumMainnet, "1")
		require.NoError(t, err)
		assert.Equal(t, domain.StandardERC1155, item.Standard)
		assert.Equal(t, testOwnerA, item.CreatorAddress)
		assert.Equal(t, "Test Token #1", item.Name)
		assert.Equal(t, "10", item.Supply)

		ownerships, err := store.GetOwnerships(ctx, contract, domain.ChainEthereumMainnet, "1")
		require.NoError(t, err)
		require.Len(t, ownerships, 1)
		assert.Equal(t, testOwnerA, ownerships[0].OwnerAddress)
		assert.Equal(t, "10", ownerships[0].Quantity)
	})

	t.Run("replaying the same log changes nothing", func(t *testing.T) {
		input := buildMintInput(contract, "1", testOwnerA, "10", "0xmint1")
		applied, err := store.ApplyTransfer(ctx, input)
		require.NoError(t, err)
		assert.False(t, applied)

		item, err := store.GetItem(ctx, contract, domain.ChainEthereumMainnet, "1")
		require.NoError(t, err)
		assert.Equal(t, "10", item.Supply)

		ownerships, err := store.GetOwnerships(ctx, contract, domain.ChainEthereumMainnet, "1")
		require.NoError(t, err)
		require.Len(t, ownerships, 1)
		assert.Equal(t, "10", ownerships[0].Quantity)
	})

	t.Run("transfer conserves total balance", func(t *testing.T) {
		input := buildTransferInput(contract, "1", testOwnerA, testOwnerB, "4", "0xtransfer1", 1)
		applied, err := store.ApplyTransfer(ctx, input)
		require.NoError(t, err)
		assert.True(t, applied)

		ownerships, err := store.GetOwnerships(ctx, contract, domain.ChainEthereumMainnet, "1")
		require.NoError(t, err)
		require.Len(t, ownerships, 2)
		// ordered by owner address
		balances := map[string]string{}
		for _, o := range ownerships {
			balances[o.OwnerAddress] = o.Quantity
		}
		assert.Equal(t, "6", balances[testOwnerA])
		assert.Equal(t, "4", balances[testOwnerB])
	})

	t.Run("replaying a transfer does not double-move", func(t *testing.T) {
		input := buildTransferInput(contract, "1", testOwnerA, testOwnerB, "4", "0xtransfer1", 1)
		applied, err := store.ApplyTransfer(ctx, input)
		require.NoError(t, err)
		assert.False(t, applied)

		ownerships, err := store.GetOwnerships(ctx, contract, domain.ChainEthereumMainnet, "1")
		require.NoError(t, err)
		balances := map[string]string{}
		for _, o := range ownerships {
			balances[o.OwnerAddress] = o.Quantity
		}
		assert.Equal(t, "6", balances[testOwnerA])
		assert.Equal(t, "4", balances[testOwnerB])
	})

	t.Run("burn decrements without creating a zero-address balance", func(t *testing.T) {
		input := buildTransferInput(contract, "1", testOwnerB, domain.ZeroAddress, "4", "0xburn1", 2)
		applied, err := store.ApplyTransfer(ctx, input)
		require.NoError(t, err)
		assert.True(t, applied)

		ownerships, err := store.GetOwnerships(ctx, contract, domain.ChainEthereumMainnet, "1")
		require.NoError(t, err)
		balances := map[string]string{}
		for _, o := range ownerships {
			balances[o.OwnerAddress] = o.Quantity
		}
		assert.Equal(t, "6", balances[testOwnerA])
		assert.Equal(t, "0", balances[testOwnerB])
		_, hasZero := balances[domain.ZeroAddress]
		assert.False(t, hasZero)
	})

	t.Run("second mint of a multi-supply token adds to supply", func(t *testing.T) {
		input := buildMintInput(contract, "1", testOwnerC, "5", "0xmint2")
		applied, err := store.ApplyTransfer(ctx, input)
		require.NoError(t, err)
		assert.True(t, applied)

		item, err := store.GetItem(ctx, contract, domain.ChainEthereumMainnet, "1")
		require.NoError(t, err)
		assert.Equal(t, "15", item.Supply)
		// first mint wins the immutable item fields
		assert.Equal(t, testOwnerA, item.CreatorAddress)
	})

	t.Run("batch transfer applies every entry under one ledger row", func(t *testing.T) {
		transfer := domain.TransferPayload{
			Standard:    domain.StandardERC1155,
			FromAddress: domain.ZeroAddress,
			ToAddress:   testOwnerA,
			Entries: []domain.TransferEntry{
				{TokenNumber: "20", Quantity: "2"},
				{TokenNumber: "21", Quantity: "3"},
			},
		}
		raw, _ := json.Marshal(transfer)
		input := ApplyTransferInput{
			Event:    buildTransferEvent(contract, "0xbatch1", 3, transfer),
			Transfer: transfer,
			ItemSeed: &ItemSeed{Standard: domain.StandardERC1155, CreatorAddress: testOwnerA, Name: "Batch"},
			Raw:      datatypes.JSON(raw),
		}
		applied, err := store.ApplyTransfer(ctx, input)
		require.NoError(t, err)
		assert.True(t, applied)

		for _, tokenNumber := range []string{"20", "21"} {
			_, err := store.GetItem(ctx, contract, domain.ChainEthereumMainnet, tokenNumber)
			require.NoError(t, err)
		}

		applied, err = store.ApplyTransfer(ctx, input)
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("unknown item lookup returns ErrItemNotFound", func(t *testing.T) {
		_, err := store.GetItem(ctx, contract, domain.ChainEthereumMainnet, "999")
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

// =============================================================================
// Test: Listing lifecycle
// =============================================================================

func testListingLifecycle(t *testing.T, store Store) {
	ctx := context.Background()
	contract := domain.NormalizeAddress("0x2222000000000000000000000000000000000002")

	t.Run("listing for an unknown token is skipped", func(t *testing.T) {
		created, err := store.CreateListing(ctx, buildListingInput(contract, "404", "900", testOwnerA))
		require.NoError(t, err)
		assert.False(t, created)

		_, err = store.GetListing(ctx, domain.ChainEthereumMainnet, "900")
		assert.ErrorIs(t, err, domain.ErrListingNotFound)
	})

	t.Run("create and read back", func(t *testing.T) {
		seedTokenWithListing(t, store, contract, "1", "100")

		listing, err := store.GetListing(ctx, domain.ChainEthereumMainnet, "100")
		require.NoError(t, err)
		assert.Equal(t, contract, listing.ContractAddress)
		assert.Equal(t, "1", listing.TokenNumber)
		assert.Equal(t, testOwnerA, listing.TokenOwner)
		assert.Equal(t, domain.ListingTypeDirect, listing.ListingType)
		assert.Equal(t, schema.ListingStatusCreated, listing.Status)
	})

	t.Run("duplicate listing ID is absorbed", func(t *testing.T) {
		created, err := store.CreateListing(ctx, buildListingInput(contract, "1", "100", testOwnerB))
		require.NoError(t, err)
		assert.False(t, created)

		listing, err := store.GetListing(ctx, domain.ChainEthereumMainnet, "100")
		require.NoError(t, err)
		assert.Equal(t, testOwnerA, listing.TokenOwner)
	})

	t.Run("refresh overwrites mutable fields", func(t *testing.T) {
		now := time.Now().UTC()
		snapshot := domain.ListingSnapshot{
			ListingID:    "100",
			TokenOwner:   testOwnerA,
			Quantity:     "2",
			Currency:     testCurrency,
			ReservePrice: "1",
			BuyoutPrice:  "2000000000000000000",
			StartTime:    now,
			EndTime:      now.Add(48 * time.Hour),
		}
		err := store.RefreshListing(ctx, domain.ChainEthereumMainnet, snapshot, now)
		require.NoError(t, err)

		listing, err := store.GetListing(ctx, domain.ChainEthereumMainnet, "100")
		require.NoError(t, err)
		assert.Equal(t, "2", listing.Quantity)
		assert.Equal(t, "2000000000000000000", listing.BuyoutPricePerToken)
		assert.Equal(t, schema.ListingStatusCreated, listing.Status)
	})

	t.Run("cancel transitions to cancelled", func(t *testing.T) {
		err := store.CancelListing(ctx, domain.ChainEthereumMainnet, "100", time.Now().UTC())
		require.NoError(t, err)

		listing, err := store.GetListing(ctx, domain.ChainEthereumMainnet, "100")
		require.NoError(t, err)
		assert.Equal(t, schema.ListingStatusCancelled, listing.Status)
	})

	t.Run("terminal listings are never touched again", func(t *testing.T) {
		now := time.Now().UTC()
		err := store.RefreshListing(ctx, domain.ChainEthereumMainnet, domain.ListingSnapshot{
			ListingID: "100",
			Quantity:  "99",
		}, now)
		require.NoError(t, err)

		err = store.MarkListingClosedByLister(ctx, domain.ChainEthereumMainnet, "100", now)
		require.NoError(t, err)

		listing, err := store.GetListing(ctx, domain.ChainEthereumMainnet, "100")
		require.NoError(t, err)
		assert.Equal(t, schema.ListingStatusCancelled, listing.Status)
		assert.Equal(t, "2", listing.Quantity)
		assert.False(t, listing.ClosedByLister)
	})

	t.Run("closed-by-lister flag on a live auction", func(t *testing.T) {
		seedTokenWithListing(t, store, contract, "2", "101")

		err := store.MarkListingClosedByLister(ctx, domain.ChainEthereumMainnet, "101", time.Now().UTC())
		require.NoError(t, err)

		listing, err := store.GetListing(ctx, domain.ChainEthereumMainnet, "101")
		require.NoError(t, err)
		assert.True(t, listing.ClosedByLister)
		assert.Equal(t, schema.ListingStatusCreated, listing.Status)
	})
}

// =============================================================================
// Test: Sales and offers
// =============================================================================

func testSalesAndOffers(t *testing.T, store Store) {
	ctx := context.Background()
	contract := domain.NormalizeAddress("0x3333000000000000000000000000000000000003")
	now := time.Now().UTC()

	seedTokenWithListing(t, store, contract, "1", "200")

	t.Run("offer is recorded once per transaction hash", func(t *testing.T) {
		input := CreateOfferInput{
			Chain:            domain.ChainEthereumMainnet,
			TxHash:           "0xoffer1",
			ListingID:        "200",
			Offeror:          testOwnerB,
			QuantityWanted:   "1",
			TotalOfferAmount: "500000000000000000",
			Currency:         testCurrency,
			ExpirationTime:   now.Add(time.Hour),
			Timestamp:        now,
		}
		created, err := store.CreateOffer(ctx, input)
		require.NoError(t, err)
		assert.True(t, created)

		created, err = store.CreateOffer(ctx, input)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("sale completes the listing and the buyer's open offer", func(t *testing.T) {
		input := CreateSaleInput{
			Chain:      domain.ChainEthereumMainnet,
			TxHash:     "0xsale1",
			ListingID:  "200",
			Buyer:      testOwnerB,
			Seller:     testOwnerA,
			Quantity:   "1",
			TotalPrice: "500000000000000000",
			Currency:   testCurrency,
			Timestamp:  now,
		}
		created, err := store.CreateSale(ctx, input)
		require.NoError(t, err)
		assert.True(t, created)

		listing, err := store.GetListing(ctx, domain.ChainEthereumMainnet, "200")
		require.NoError(t, err)
		assert.Equal(t, schema.ListingStatusCompleted, listing.Status)
	})

	t.Run("replaying the sale is a no-op", func(t *testing.T) {
		created, err := store.CreateSale(ctx, CreateSaleInput{
			Chain:      domain.ChainEthereumMainnet,
			TxHash:     "0xsale1",
			ListingID:  "200",
			Buyer:      testOwnerB,
			Seller:     testOwnerA,
			Quantity:   "1",
			TotalPrice: "500000000000000000",
			Currency:   testCurrency,
			Timestamp:  now,
		})
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("bids append without deduplication", func(t *testing.T) {
		seedTokenWithListing(t, store, contract, "2", "201")

		for i := 0; i < 2; i++ {
			err := store.CreateBid(ctx, CreateBidInput{
				Chain:          domain.ChainEthereumMainnet,
				TxHash:         fmt.Sprintf("0xbid%d", i),
				ListingID:      "201",
				Bidder:         testOwnerC,
				QuantityWanted: "1",
				PricePerToken:  "100",
				Currency:       testCurrency,
				Timestamp:      now,
			})
			require.NoError(t, err)
		}
	})
}

// =============================================================================
// Test: Royalty payments
// =============================================================================

func testRoyaltyPayments(t *testing.T, store Store) {
	ctx := context.Background()
	contract := domain.NormalizeAddress("0x4444000000000000000000000000000000000004")
	now := time.Now().UTC()

	seedTokenWithListing(t, store, contract, "1", "300")

	input := CreateRoyaltyPaymentsInput{
		Chain:     domain.ChainEthereumMainnet,
		TxHash:    "0xroyalty1",
		ListingID: "300",
		Recipients: []domain.RoyaltyRecipient{
			{Recipient: testOwnerA, Bps: 750},
			{Recipient: testOwnerB, Bps: 250},
		},
		TotalPayout: "1000000000000000000",
		Currency:    testCurrency,
		Timestamp:   now,
	}

	t.Run("amounts split by basis points", func(t *testing.T) {
		err := store.CreateRoyaltyPayments(ctx, input)
		require.NoError(t, err)

		payments, err := store.GetRoyaltyPayments(ctx, domain.ChainEthereumMainnet, "0xroyalty1")
		require.NoError(t, err)
		require.Len(t, payments, 2)

		amounts := make(map[string]string)
		for _, payment := range payments {
			amounts[payment.RecipientAddress] = payment.Amount
		}
		assert.Equal(t, "75000000000000000", amounts[testOwnerA])
		assert.Equal(t, "25000000000000000", amounts[testOwnerB])
	})

	t.Run("replaying the event skips recorded recipients", func(t *testing.T) {
		err := store.CreateRoyaltyPayments(ctx, input)
		require.NoError(t, err)

		payments, err := store.GetRoyaltyPayments(ctx, domain.ChainEthereumMainnet, "0xroyalty1")
		require.NoError(t, err)
		// still one row per recipient
		assert.Len(t, payments, 2)
	})

	t.Run("royalty for an unknown listing reference still records", func(t *testing.T) {
		unknown := input
		unknown.TxHash = "0xroyalty2"
		unknown.ListingID = "999999"
		err := store.CreateRoyaltyPayments(ctx, unknown)
		require.NoError(t, err)

		payments, err := store.GetRoyaltyPayments(ctx, domain.ChainEthereumMainnet, "0xroyalty2")
		require.NoError(t, err)
		require.Len(t, payments, 2)
		for _, payment := range payments {
			assert.Nil(t, payment.SaleKind)
		}
	})
}

func testRoyaltyAmount(t *testing.T, _ Store) {
	tests := []struct {
		total    string
		bps      uint32
		expected string
	}{
		{"1000000000000000000", 750, "75000000000000000"},
		{"1000000000000000000", 10000, "1000000000000000000"},
		{"3", 5000, "1"}, // truncates toward zero
		{"0", 500, "0"},
	}
	for _, tt := range tests {
		amount, err := royaltyAmount(tt.total, tt.bps)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, amount)
	}

	_, err := royaltyAmount("not-a-number", 100)
	assert.Error(t, err)
}

// =============================================================================
// Test: Imported contracts
// =============================================================================

func testImportedContracts(t *testing.T, store Store) {
	ctx := context.Background()
	contract := domain.NormalizeAddress("0x5555000000000000000000000000000000000005")

	t.Run("unknown contract returns ErrContractNotFound", func(t *testing.T) {
		_, err := store.GetImportedContract(ctx, contract, domain.ChainEthereumMainnet)
		assert.ErrorIs(t, err, domain.ErrContractNotFound)

		_, err = store.GetImportedContractByJobID(ctx, "missing-job")
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
	})

	t.Run("create and look up by address and job ID", func(t *testing.T) {
		record, err := store.CreateImportedContract(ctx, CreateImportedContractInput{
			JobID:           "job-import-1",
			ContractAddress: contract,
			Chain:           domain.ChainEthereumMainnet,
			TokenStandard:   domain.StandardERC721,
			CreatorAddress:  testOwnerA,
			DeployedAtBlock: 12345,
		})
		require.NoError(t, err)
		assert.Equal(t, schema.ImportStatusImporting, record.Status)
		assert.False(t, record.ImportFinished)

		byAddress, err := store.GetImportedContract(ctx, contract, domain.ChainEthereumMainnet)
		require.NoError(t, err)
		assert.Equal(t, "job-import-1", byAddress.JobID)

		byJob, err := store.GetImportedContractByJobID(ctx, "job-import-1")
		require.NoError(t, err)
		assert.Equal(t, contract, byJob.ContractAddress)
	})

	t.Run("progress is monotonic", func(t *testing.T) {
		require.NoError(t, store.UpdateImportProgress(ctx, contract, domain.ChainEthereumMainnet, 20000))
		require.NoError(t, store.UpdateImportProgress(ctx, contract, domain.ChainEthereumMainnet, 15000))

		record, err := store.GetImportedContract(ctx, contract, domain.ChainEthereumMainnet)
		require.NoError(t, err)
		assert.Equal(t, uint64(20000), record.LastIndexedBlock)
	})

	t.Run("finish flips the terminal flag once", func(t *testing.T) {
		require.NoError(t, store.FinishImport(ctx, contract, domain.ChainEthereumMainnet))

		record, err := store.GetImportedContract(ctx, contract, domain.ChainEthereumMainnet)
		require.NoError(t, err)
		assert.True(t, record.ImportFinished)
		assert.Equal(t, schema.ImportStatusFinished, record.Status)

		// finished imports can no longer be marked failed
		require.NoError(t, store.FailImport(ctx, contract, domain.ChainEthereumMainnet))
		record, err = store.GetImportedContract(ctx, contract, domain.ChainEthereumMainnet)
		require.NoError(t, err)
		assert.Equal(t, schema.ImportStatusFinished, record.Status)
	})

	t.Run("list finished contracts for a chain", func(t *testing.T) {
		finished, err := store.ListFinishedImportedContracts(ctx, domain.ChainEthereumMainnet)
		require.NoError(t, err)
		require.Len(t, finished, 1)
		assert.Equal(t, contract, finished[0].ContractAddress)

		finished, err = store.ListFinishedImportedContracts(ctx, domain.ChainEthereumSepolia)
		require.NoError(t, err)
		assert.Empty(t, finished)
	})

	// Last: the unique-index violation aborts the shared test transaction,
	// so nothing may touch the database after this subtest.
	t.Run("duplicate submission is rejected by the unique index", func(t *testing.T) {
		_, err := store.CreateImportedContract(ctx, CreateImportedContractInput{
			JobID:           "job-import-dup",
			ContractAddress: contract,
			Chain:           domain.ChainEthereumMainnet,
			TokenStandard:   domain.StandardERC721,
			CreatorAddress:  testOwnerA,
			DeployedAtBlock: 12345,
		})
		assert.Error(t, err)
	})
}

// =============================================================================
// Test: Query surface
// =============================================================================

func testListingQueries(t *testing.T, store Store) {
	ctx := context.Background()
	contract := domain.NormalizeAddress("0x6666000000000000000000000000000000000006")

	for i := 1; i <= 5; i++ {
		seedTokenWithListing(t, store, contract, fmt.Sprintf("%d", i), fmt.Sprintf("40%d", i))
	}
	require.NoError(t, store.CancelListing(ctx, domain.ChainEthereumMainnet, "401", time.Now().UTC()))

	t.Run("filter by status with total count", func(t *testing.T) {
		listings, total, err := store.GetListingsByStatus(ctx, domain.ChainEthereumMainnet, schema.ListingStatusCreated, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, listings, 4)

		listings, total, err = store.GetListingsByStatus(ctx, domain.ChainEthereumMainnet, schema.ListingStatusCancelled, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, listings, 1)
		assert.Equal(t, "401", listings[0].ListingID)
	})

	t.Run("limit and offset page through results", func(t *testing.T) {
		page1, total, err := store.GetListingsByStatus(ctx, domain.ChainEthereumMainnet, schema.ListingStatusCreated, 3, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, page1, 3)

		page2, total, err := store.GetListingsByStatus(ctx, domain.ChainEthereumMainnet, schema.ListingStatusCreated, 3, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, page2, 1)
	})
}

func testTokenActivity(t *testing.T, store Store) {
	ctx := context.Background()
	contract := domain.NormalizeAddress("0x7777000000000000000000000000000000000007")

	seedTokenWithListing(t, store, contract, "1", "500")

	_, err := store.ApplyTransfer(ctx, buildTransferInput(contract, "1", testOwnerA, testOwnerB, "1", "0xactivity1", 1))
	require.NoError(t, err)

	created, err := store.CreateOffer(ctx, CreateOfferInput{
		Chain:            domain.ChainEthereumMainnet,
		TxHash:           "0xactivityoffer",
		ListingID:        "500",
		Offeror:          testOwnerC,
		QuantityWanted:   "1",
		TotalOfferAmount: "100",
		Currency:         testCurrency,
		ExpirationTime:   time.Now().UTC().Add(time.Hour),
		Timestamp:        time.Now().UTC(),
	})
	require.NoError(t, err)
	require.True(t, created)

	created, err = store.CreateSale(ctx, CreateSaleInput{
		Chain:      domain.ChainEthereumMainnet,
		TxHash:     "0xactivitysale",
		ListingID:  "500",
		Buyer:      testOwnerC,
		Seller:     testOwnerA,
		Quantity:   "1",
		TotalPrice: "100",
		Currency:   testCurrency,
		Timestamp:  time.Now().UTC(),
	})
	require.NoError(t, err)
	require.True(t, created)

	t.Run("union covers transfers, listings, sales and offers", func(t *testing.T) {
		entries, err := store.GetTokenActivity(ctx, contract, domain.ChainEthereumMainnet, "1", 50)
		require.NoError(t, err)

		byType := map[string]int{}
		for _, e := range entries {
			byType[e.ActivityType]++
		}
		assert.Equal(t, 2, byType["transfer"]) // mint plus one transfer
		assert.Equal(t, 1, byType["listing"])
		assert.Equal(t, 1, byType["sale"])
		assert.Equal(t, 1, byType["offer"])
	})

	t.Run("entries are newest first", func(t *testing.T) {
		entries, err := store.GetTokenActivity(ctx, contract, domain.ChainEthereumMainnet, "1", 50)
		require.NoError(t, err)
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i].Timestamp.After(entries[i-1].Timestamp))
		}
	})

	t.Run("limit caps the result", func(t *testing.T) {
		entries, err := store.GetTokenActivity(ctx, contract, domain.ChainEthereumMainnet, "1", 2)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

// testMarketLifecycle walks one token through mint, listing, offer, sale,
// settlement transfer and royalty payout, then checks the cross-table state
// in one place
func testMarketLifecycle(t *testing.T, store Store) {
	ctx := context.Background()
	contract := domain.NormalizeAddress("0x8888000000000000000000000000000000000008")
	now := time.Now().UTC()

	applied, err := store.ApplyTransfer(ctx, buildMintInput(contract, "1", testOwnerA, "5", "0xlifemint"))
	require.NoError(t, err)
	require.True(t, applied)

	created, err := store.CreateListing(ctx, buildListingInput(contract, "1", "800", testOwnerA))
	require.NoError(t, err)
	require.True(t, created)

	created, err = store.CreateOffer(ctx, CreateOfferInput{
		Chain:            domain.ChainEthereumMainnet,
		TxHash:           "0xlifeoffer",
		ListingID:        "800",
		Offeror:          testOwnerB,
		QuantityWanted:   "2",
		TotalOfferAmount: "1600000000000000000",
		Currency:         testCurrency,
		ExpirationTime:   now.Add(time.Hour),
		Timestamp:        now,
	})
	require.NoError(t, err)
	require.True(t, created)

	created, err = store.CreateSale(ctx, CreateSaleInput{
		Chain:      domain.ChainEthereumMainnet,
		TxHash:     "0xlifesale",
		ListingID:  "800",
		Buyer:      testOwnerB,
		Seller:     testOwnerA,
		Quantity:   "2",
		TotalPrice: "1600000000000000000",
		Currency:   testCurrency,
		Timestamp:  now,
	})
	require.NoError(t, err)
	require.True(t, created)

	// The settlement transfer arrives in the same transaction as the sale
	applied, err = store.ApplyTransfer(ctx, buildTransferInput(contract, "1", testOwnerA, testOwnerB, "2", "0xlifesale", 1))
	require.NoError(t, err)
	require.True(t, applied)

	err = store.CreateRoyaltyPayments(ctx, CreateRoyaltyPaymentsInput{
		Chain:       domain.ChainEthereumMainnet,
		TxHash:      "0xlifesale",
		ListingID:   "800",
		Recipients:  []domain.RoyaltyRecipient{{Recipient: testOwnerC, Bps: 500}},
		TotalPayout: "1600000000000000000",
		Currency:    testCurrency,
		Timestamp:   now,
	})
	require.NoError(t, err)

	t.Run("sale completes the listing", func(t *testing.T) {
		listing, err := store.GetListing(ctx, domain.ChainEthereumMainnet, "800")
		require.NoError(t, err)
		assert.Equal(t, schema.ListingStatusCompleted, listing.Status)
	})

	t.Run("settlement moves the sold quantity", func(t *testing.T) {
		ownerships, err := store.GetOwnerships(ctx, contract, domain.ChainEthereumMainnet, "1")
		require.NoError(t, err)

		held := make(map[string]string)
		for _, ownership := range ownerships {
			held[ownership.OwnerAddress] = ownership.Quantity
		}
		assert.Equal(t, "3", held[testOwnerA])
		assert.Equal(t, "2", held[testOwnerB])
	})

	t.Run("royalty resolves against the completed listing", func(t *testing.T) {
		payments, err := store.GetRoyaltyPayments(ctx, domain.ChainEthereumMainnet, "0xlifesale")
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, "80000000000000000", payments[0].Amount)
		require.NotNil(t, payments[0].SaleKind)
		assert.Equal(t, schema.SaleKindListing, *payments[0].SaleKind)
	})

	t.Run("activity reflects the full history newest first", func(t *testing.T) {
		entries, err := store.GetTokenActivity(ctx, contract, domain.ChainEthereumMainnet, "1", 50)
		require.NoError(t, err)

		byType := map[string]int{}
		for _, e := range entries {
			byType[e.ActivityType]++
		}
		assert.Equal(t, 2, byType["transfer"]) // mint plus settlement
		assert.Equal(t, 1, byType["listing"])
		assert.Equal(t, 1, byType["offer"])
		assert.Equal(t, 1, byType["sale"])
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i].Timestamp.After(entries[i-1].Timestamp))
		}
	})
}

// =============================================================================
// Suite runner
// =============================================================================

// RunStoreTests runs the store suite against a fresh store per test
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Checkpoints", testCheckpoints},
		{"ApplyTransfer", testApplyTransfer},
		{"ListingLifecycle", testListingLifecycle},
		{"SalesAndOffers", testSalesAndOffers},
		{"RoyaltyPayments", testRoyaltyPayments},
		{"RoyaltyAmount", testRoyaltyAmount},
		{"ImportedContracts", testImportedContracts},
		{"ListingQueries", testListingQueries},
		{"TokenActivity", testTokenActivity},
		{"MarketLifecycle", testMarketLifecycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
