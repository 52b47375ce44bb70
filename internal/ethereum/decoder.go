package ethereum

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/mintstream/marketplace-indexer/internal/domain"
)

// Event signatures for the logs the indexer recognizes. The set is closed:
// Decode maps each topic0 below to one event shape and returns nil for
// anything else.
var (
	// Transfer is shared by ERC20 (3 topics) and ERC721 (4 topics)
	transferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

	// ERC1155 single transfer
	transferSingleEventSignature = crypto.Keccak256Hash([]byte("TransferSingle(address,address,address,uint256,uint256)"))

	// ERC1155 batch transfer
	transferBatchEventSignature = crypto.Keccak256Hash([]byte("TransferBatch(address,address,address,uint256[],uint256[])"))

	// Marketplace lifecycle events
	listingAddedEventSignature   = crypto.Keccak256Hash([]byte("ListingAdded(uint256,address,address,(uint256,address,address,uint256,uint256,uint256,uint256,address,uint256,uint256,uint8,uint8))"))
	listingUpdatedEventSignature = crypto.Keccak256Hash([]byte("ListingUpdated(uint256,address)"))
	listingRemovedEventSignature = crypto.Keccak256Hash([]byte("ListingRemoved(uint256,address)"))
	newSaleEventSignature        = crypto.Keccak256Hash([]byte("NewSale(uint256,address,address,address,uint256,uint256)"))
	newOfferEventSignature       = crypto.Keccak256Hash([]byte("NewOffer(uint256,address,uint8,uint256,uint256,address)"))
	auctionClosedEventSignature  = crypto.Keccak256Hash([]byte("AuctionClosed(uint256,address,bool,address,address)"))

	// Payout distributor royalty event
	royaltyPaidEventSignature = crypto.Keccak256Hash([]byte("RoyaltyPaid(uint256,address,address[],uint256[],uint256,address)"))
)

// EventSignatures returns all recognized topic0 hashes for log filter queries
func EventSignatures() []common.Hash {
	return []common.Hash{
		transferEventSignature,
		transferSingleEventSignature,
		transferBatchEventSignature,
		listingAddedEventSignature,
		listingUpdatedEventSignature,
		listingRemovedEventSignature,
		newSaleEventSignature,
		newOfferEventSignature,
		auctionClosedEventSignature,
		royaltyPaidEventSignature,
	}
}

func mustNewType(t string, components []abi.ArgumentMarshaling) abi.Type {
	typ, err := abi.NewType(t, "", components)
	if err != nil {
		panic(err)
	}
	return typ
}

var (
	uint256Type      = mustNewType("uint256", nil)
	uint256ArrayType = mustNewType("uint256[]", nil)
	addressType      = mustNewType("address", nil)
	addressArrayType = mustNewType("address[]", nil)

	listingTupleType = mustNewType("tuple", []abi.ArgumentMarshaling{
		{Name: "listingId", Type: "uint256"},
		{Name: "tokenOwner", Type: "address"},
		{Name: "assetContract", Type: "address"},
		{Name: "tokenId", Type: "uint256"},
		{Name: "startTime", Type: "uint256"},
		{Name: "endTime", Type: "uint256"},
		{Name: "quantity", Type: "uint256"},
		{Name: "currency", Type: "address"},
		{Name: "reservePricePerToken", Type: "uint256"},
		{Name: "buyoutPricePerToken", Type: "uint256"},
		{Name: "tokenType", Type: "uint8"},
		{Name: "listingType", Type: "uint8"},
	})

	transferSingleDataArgs = abi.Arguments{
		{Name: "id", Type: uint256Type},
		{Name: "value", Type: uint256Type},
	}
	transferBatchDataArgs = abi.Arguments{
		{Name: "ids", Type: uint256ArrayType},
		{Name: "values", Type: uint256ArrayType},
	}
	listingAddedDataArgs = abi.Arguments{
		{Name: "listing", Type: listingTupleType},
	}
	newSaleDataArgs = abi.Arguments{
		{Name: "buyer", Type: addressType},
		{Name: "quantityBought", Type: uint256Type},
		{Name: "totalPricePaid", Type: uint256Type},
	}
	newOfferDataArgs = abi.Arguments{
		{Name: "quantityWanted", Type: uint256Type},
		{Name: "totalOfferAmount", Type: uint256Type},
		{Name: "currency", Type: addressType},
	}
	auctionClosedDataArgs = abi.Arguments{
		{Name: "auctionCreator", Type: addressType},
		{Name: "winningBidder", Type: addressType},
	}
	royaltyPaidDataArgs = abi.Arguments{
		{Name: "recipients", Type: addressArrayType},
		{Name: "bps", Type: uint256ArrayType},
		{Name: "totalPayout", Type: uint256Type},
		{Name: "currency", Type: addressType},
	}
)

// listingTuple mirrors the ABI components of listingTupleType for unpacking
type listingTuple struct {
	ListingId            *big.Int
	TokenOwner           common.Address
	AssetContract        common.Address
	TokenId              *big.Int
	StartTime            *big.Int
	EndTime              *big.Int
	Quantity             *big.Int
	Currency             common.Address
	ReservePricePerToken *big.Int
	BuyoutPricePerToken  *big.Int
	TokenType            uint8
	ListingType          uint8
}

// Decoder turns raw chain logs into typed events. It is pure: no network
// access, no clock. Event timestamps are stamped by the caller from the
// containing block header.
type Decoder struct {
	chain domain.Chain
}

func NewDecoder(chain domain.Chain) *Decoder {
	return &Decoder{chain: chain}
}

// Decode decodes a raw log into a typed event. Unrecognized topics and ERC20
// transfers return (nil, nil): not indexed, not an error. Logs matching a
// known topic with a malformed shape return an error.
func (d *Decoder) Decode(vLog types.Log) (*domain.Event, error) {
	if len(vLog.Topics) == 0 {
		return nil, nil
	}

	event := &domain.Event{
		Chain:           d.chain,
		ContractAddress: vLog.Address.Hex(),
		TxHash:          vLog.TxHash.Hex(),
		TxIndex:         uint64(vLog.TxIndex),
		LogIndex:        uint64(vLog.Index),
		BlockNumber:     vLog.BlockNumber,
		BlockHash:       vLog.BlockHash.Hex(),
	}

	switch vLog.Topics[0] {
	case transferEventSignature:
		// ERC20 has 3 topics (signature, from, to) with value in data;
		// ERC721 has 4 topics (signature, from, to, tokenId) with no data
		if len(vLog.Topics) == 3 {
			return nil, nil // ERC20 transfer, not indexed
		}
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid Transfer event: expected 3 or 4 topics, got %d", len(vLog.Topics))
		}

		event.Kind = domain.EventKindTransfer
		event.Transfer = &domain.TransferPayload{
			Standard:    domain.StandardERC721,
			FromAddress: common.BytesToAddress(vLog.Topics[1].Bytes()).Hex(),
			ToAddress:   common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
			Entries: []domain.TransferEntry{{
				TokenNumber: new(big.Int).SetBytes(vLog.Topics[3].Bytes()).String(),
				Quantity:    "1",
			}},
		}

	case transferSingleEventSignature:
		// TransferSingle(address indexed operator, address indexed from, address indexed to, uint256 id, uint256 value)
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid TransferSingle event: expected 4 topics, got %d", len(vLog.Topics))
		}
		values, err := transferSingleDataArgs.UnpackValues(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid TransferSingle event data: %w", err)
		}

		event.Kind = domain.EventKindTransfer
		event.Transfer = &domain.TransferPayload{
			Standard:    domain.StandardERC1155,
			Operator:    common.BytesToAddress(vLog.Topics[1].Bytes()).Hex(),
			FromAddress: common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
			ToAddress:   common.BytesToAddress(vLog.Topics[3].Bytes()).Hex(),
			Entries: []domain.TransferEntry{{
				TokenNumber: values[0].(*big.Int).String(),
				Quantity:    values[1].(*big.Int).String(),
			}},
		}

	case transferBatchEventSignature:
		// TransferBatch(address indexed operator, address indexed from, address indexed to, uint256[] ids, uint256[] values)
		// All entries share the log's ledger key, so the whole batch is
		// applied (or replay-skipped) as one unit.
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid TransferBatch event: expected 4 topics, got %d", len(vLog.Topics))
		}
		values, err := transferBatchDataArgs.UnpackValues(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid TransferBatch event data: %w", err)
		}
		ids := values[0].([]*big.Int)
		amounts := values[1].([]*big.Int)
		if len(ids) != len(amounts) {
			return nil, fmt.Errorf("invalid TransferBatch event: %d ids but %d values", len(ids), len(amounts))
		}

		entries := make([]domain.TransferEntry, 0, len(ids))
		for i := range ids {
			entries = append(entries, domain.TransferEntry{
				TokenNumber: ids[i].String(),
				Quantity:    amounts[i].String(),
			})
		}

		event.Kind = domain.EventKindTransfer
		event.Transfer = &domain.TransferPayload{
			Standard:    domain.StandardERC1155,
			Operator:    common.BytesToAddress(vLog.Topics[1].Bytes()).Hex(),
			FromAddress: common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
			ToAddress:   common.BytesToAddress(vLog.Topics[3].Bytes()).Hex(),
			Entries:     entries,
		}

	case listingAddedEventSignature:
		// ListingAdded(uint256 indexed listingId, address indexed assetContract, address indexed lister, Listing listing)
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid ListingAdded event: expected 4 topics, got %d", len(vLog.Topics))
		}
		values, err := listingAddedDataArgs.UnpackValues(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid ListingAdded event data: %w", err)
		}
		tuple := abi.ConvertType(values[0], new(listingTuple)).(*listingTuple)

		event.Kind = domain.EventKindListingAdded
		event.ListingAdded = &domain.ListingAddedPayload{
			Lister: common.BytesToAddress(vLog.Topics[3].Bytes()).Hex(),
			Listing: domain.ListingSnapshot{
				ListingID:     tuple.ListingId.String(),
				TokenOwner:    tuple.TokenOwner.Hex(),
				AssetContract: tuple.AssetContract.Hex(),
				TokenNumber:   tuple.TokenId.String(),
				StartTime:     domain.ClampTimestamp(tuple.StartTime),
				EndTime:       domain.ClampTimestamp(tuple.EndTime),
				Quantity:      tuple.Quantity.String(),
				Currency:      tuple.Currency.Hex(),
				ReservePrice:  tuple.ReservePricePerToken.String(),
				BuyoutPrice:   tuple.BuyoutPricePerToken.String(),
				ListingType:   domain.ListingTypeFromCode(tuple.ListingType),
			},
		}

	case listingUpdatedEventSignature:
		// ListingUpdated(uint256 indexed listingId, address indexed listingCreator)
		if len(vLog.Topics) != 3 {
			return nil, fmt.Errorf("invalid ListingUpdated event: expected 3 topics, got %d", len(vLog.Topics))
		}
		event.Kind = domain.EventKindListingUpdated
		event.ListingRef = &domain.ListingRefPayload{
			ListingID: new(big.Int).SetBytes(vLog.Topics[1].Bytes()).String(),
			Actor:     common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
		}

	case listingRemovedEventSignature:
		// ListingRemoved(uint256 indexed listingId, address indexed listingCreator)
		if len(vLog.Topics) != 3 {
			return nil, fmt.Errorf("invalid ListingRemoved event: expected 3 topics, got %d", len(vLog.Topics))
		}
		event.Kind = domain.EventKindListingRemoved
		event.ListingRef = &domain.ListingRefPayload{
			ListingID: new(big.Int).SetBytes(vLog.Topics[1].Bytes()).String(),
			Actor:     common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
		}

	case newSaleEventSignature:
		// NewSale(uint256 indexed listingId, address indexed assetContract, address indexed lister, address buyer, uint256 quantityBought, uint256 totalPricePaid)
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid NewSale event: expected 4 topics, got %d", len(vLog.Topics))
		}
		values, err := newSaleDataArgs.UnpackValues(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid NewSale event data: %w", err)
		}

		event.Kind = domain.EventKindNewSale
		event.Sale = &domain.SalePayload{
			ListingID:      new(big.Int).SetBytes(vLog.Topics[1].Bytes()).String(),
			AssetContract:  common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
			Lister:         common.BytesToAddress(vLog.Topics[3].Bytes()).Hex(),
			Buyer:          values[0].(common.Address).Hex(),
			QuantityBought: values[1].(*big.Int).String(),
			TotalPricePaid: values[2].(*big.Int).String(),
		}

	case newOfferEventSignature:
		// NewOffer(uint256 indexed listingId, address indexed offeror, uint8 indexed listingType, uint256 quantityWanted, uint256 totalOfferAmount, address currency)
		// The offer's expiration is not in the event; the reconciler reads it
		// from the offers(id, addr) view call.
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid NewOffer event: expected 4 topics, got %d", len(vLog.Topics))
		}
		values, err := newOfferDataArgs.UnpackValues(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid NewOffer event data: %w", err)
		}

		event.Kind = domain.EventKindNewOffer
		event.Offer = &domain.OfferPayload{
			ListingID:        new(big.Int).SetBytes(vLog.Topics[1].Bytes()).String(),
			Offeror:          common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
			ListingType:      domain.ListingTypeFromCode(uint8(new(big.Int).SetBytes(vLog.Topics[3].Bytes()).Uint64())),
			QuantityWanted:   values[0].(*big.Int).String(),
			TotalOfferAmount: values[1].(*big.Int).String(),
			Currency:         values[2].(common.Address).Hex(),
			ExpirationTime:   domain.MaxTimestamp,
		}

	case auctionClosedEventSignature:
		// AuctionClosed(uint256 indexed listingId, address indexed closer, bool indexed cancelled, address auctionCreator, address winningBidder)
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid AuctionClosed event: expected 4 topics, got %d", len(vLog.Topics))
		}
		values, err := auctionClosedDataArgs.UnpackValues(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid AuctionClosed event data: %w", err)
		}

		event.Kind = domain.EventKindAuctionClosed
		event.AuctionClosed = &domain.AuctionClosedPayload{
			ListingID:      new(big.Int).SetBytes(vLog.Topics[1].Bytes()).String(),
			Closer:         common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
			Cancelled:      vLog.Topics[3] != (common.Hash{}),
			AuctionCreator: values[0].(common.Address).Hex(),
			WinningBidder:  values[1].(common.Address).Hex(),
		}

	case royaltyPaidEventSignature:
		// RoyaltyPaid(uint256 indexed listingId, address indexed payer, address[] recipients, uint256[] bps, uint256 totalPayout, address currency)
		if len(vLog.Topics) != 3 {
			return nil, fmt.Errorf("invalid RoyaltyPaid event: expected 3 topics, got %d", len(vLog.Topics))
		}
		values, err := royaltyPaidDataArgs.UnpackValues(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid RoyaltyPaid event data: %w", err)
		}
		recipients := values[0].([]common.Address)
		bps := values[1].([]*big.Int)
		if len(recipients) != len(bps) {
			return nil, fmt.Errorf("invalid RoyaltyPaid event: %d recipients but %d bps", len(recipients), len(bps))
		}

		pairs := make([]domain.RoyaltyRecipient, 0, len(recipients))
		for i := range recipients {
			pairs = append(pairs, domain.RoyaltyRecipient{
				Recipient: recipients[i].Hex(),
				Bps:       uint32(bps[i].Uint64()),
			})
		}

		event.Kind = domain.EventKindRoyaltyPaid
		event.Royalty = &domain.RoyaltyPayload{
			ListingID:   new(big.Int).SetBytes(vLog.Topics[1].Bytes()).String(),
			Payer:       common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
			Recipients:  pairs,
			TotalPayout: values[2].(*big.Int).String(),
			Currency:    values[3].(common.Address).Hex(),
		}

	default:
		return nil, nil // unrecognized topic, not indexed
	}

	return event, nil
}
