package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/mintstream/marketplace-indexer/internal/adapter"
	"github.com/mintstream/marketplace-indexer/internal/domain"
	"github.com/mintstream/marketplace-indexer/internal/logger"
)

const (
	callTimeout = time.Minute
	// halvePause spaces retries after the node rejects a log range
	halvePause = 200 * time.Millisecond
)

//go:generate mockgen -source=client.go -destination=../mocks/ethereum_client.go -package=mocks

// Client wraps a JSON-RPC connection with the token and marketplace view
// calls the indexer needs. Events never patch marketplace state directly;
// MarketplaceListing is the authoritative read for listing mutations.
type Client interface {
	// SubscribeNewHead subscribes to new block headers
	SubscribeNewHead(ctx context.Context, ch chan<- *types.Header) (ethereum.Subscription, error)

	// FilterLogs fetches logs for a query
	FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)

	// BlockNumber returns the latest block number
	BlockNumber(ctx context.Context) (uint64, error)

	// BlockByNumber returns a block by number
	BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error)

	// HeaderByNumber returns a header by number (nil = latest)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)

	// MarketplaceListing reads the full listing struct from the marketplace
	// contract, or domain.ErrListingNotFound for an empty slot
	MarketplaceListing(ctx context.Context, marketplaceAddress, listingID string) (*domain.ListingSnapshot, error)

	// MarketplaceWinningBid reads the current winning bid for an auction
	MarketplaceWinningBid(ctx context.Context, marketplaceAddress, listingID string) (*domain.BidView, error)

	// MarketplaceOffer reads the offer an address holds against a listing
	MarketplaceOffer(ctx context.Context, marketplaceAddress, listingID, offeror string) (*domain.BidView, error)

	// SupportsInterface probes ERC-165 supportsInterface. A revert means the
	// contract does not implement the probe and reports false.
	SupportsInterface(ctx context.Context, contractAddress string, interfaceID [4]byte) (bool, error)

	// ERC721TokenURI fetches the tokenURI from an ERC721 contract
	ERC721TokenURI(ctx context.Context, contractAddress, tokenNumber string) (string, error)

	// ERC1155URI fetches the uri from an ERC1155 contract
	ERC1155URI(ctx context.Context, contractAddress, tokenNumber string) (string, error)

	// ERC721OwnerOf fetches the current owner of an ERC721 token
	ERC721OwnerOf(ctx context.Context, contractAddress, tokenNumber string) (string, error)

	// ContractOwner probes the Ownable owner() view call
	ContractOwner(ctx context.Context, contractAddress string) (string, error)

	// DeploymentBlock finds the first block where the contract has code
	// minBlock specifies the earliest block to search (0 = search from genesis)
	DeploymentBlock(ctx context.Context, contractAddress string, minBlock uint64) (uint64, error)

	// ContractDeployer retrieves the deployer address for a contract
	ContractDeployer(ctx context.Context, contractAddress string, minBlock uint64) (string, error)

	// Close closes the connection
	Close()
}

type client struct {
	chain  domain.Chain
	client adapter.EthClient
	clock  adapter.Clock
}

func NewClient(chain domain.Chain, ethClient adapter.EthClient, clock adapter.Clock) Client {
	return &client{chain: chain, client: ethClient, clock: clock}
}

func (c *client) SubscribeNewHead(ctx context.Context, ch chan<- *types.Header) (ethereum.Subscription, error) {
	return c.client.SubscribeNewHead(ctx, ch)
}

// FilterLogs fetches logs for the query range. When the node rejects the
// range as too large, the range is re-fetched in halved sub-ranges until the
// node accepts, pausing briefly between attempts.
func (c *client) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	if query.BlockHash != nil || query.FromBlock == nil || query.ToBlock == nil {
		return c.client.FilterLogs(timeoutCtx, query)
	}

	from := query.FromBlock.Uint64()
	to := query.ToBlock.Uint64()
	step := to - from + 1

	var allLogs []types.Log
	for from <= to {
		end := from + step - 1
		if end > to {
			end = to
		}

		chunkQuery := query
		chunkQuery.FromBlock = new(big.Int).SetUint64(from)
		chunkQuery.ToBlock = new(big.Int).SetUint64(end)

		logs, err := c.client.FilterLogs(timeoutCtx, chunkQuery)
		if err != nil {
			if !isTooManyResultsError(err) {
				return nil, err
			}
			if step == 1 {
				return nil, fmt.Errorf("node rejected single-block log query %d: %w", from, err)
			}
			step /= 2
			logger.WarnCtx(ctx, "Too many results, halving log query range",
				zap.String("chain", string(c.chain)),
				zap.Uint64("newStep", step),
				zap.Uint64("fromBlock", from),
				zap.Uint64("toBlock", end))
			c.clock.Sleep(halvePause)
			continue
		}

		allLogs = append(allLogs, logs...)
		from = end + 1
	}

	return allLogs, nil
}

// isTooManyResultsError reports whether the node rejected the query for
// returning too many results. Node implementations word this differently.
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum")
}

func (c *client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.client.BlockNumber(ctx)
}

func (c *client) BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error) {
	return c.client.BlockByNumber(ctx, number)
}

func (c *client) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return c.client.HeaderByNumber(ctx, number)
}

// call packs a view call against a contract and returns the raw result
func (c *client) call(ctx context.Context, contractAddress string, callABI abi.ABI, method string, args ...interface{}) ([]byte, error) {
	data, err := callABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contractAddress)
	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call contract: %w", err)
	}
	return result, nil
}

// marketplaceListingResult mirrors the marketplace contract's listings(uint256)
// public mapping getter return tuple
type marketplaceListingResult struct {
	ListingID            *big.Int
	TokenOwner           common.Address
	AssetContract        common.Address
	TokenID              *big.Int
	StartTime            *big.Int
	EndTime              *big.Int
	Quantity             *big.Int
	Currency             common.Address
	ReservePricePerToken *big.Int
	BuyoutPricePerToken  *big.Int
	TokenType            uint8
	ListingType          uint8
}

// MarketplaceListing reads the listing struct from the marketplace contract.
// An empty slot (zero token owner) maps to domain.ErrListingNotFound.
func (c *client) MarketplaceListing(ctx context.Context, marketplaceAddress, listingID string) (*domain.ListingSnapshot, error) {
	// Marketplace listings mapping getter: listings(uint256) returns the full Listing struct
	listingsABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"","type":"uint256"}],"name":"listings","outputs":[{"name":"listingId","type":"uint256"},{"name":"tokenOwner","type":"address"},{"name":"assetContract","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"startTime","type":"uint256"},{"name":"endTime","type":"uint256"},{"name":"quantity","type":"uint256"},{"name":"currency","type":"address"},{"name":"reservePricePerToken","type":"uint256"},{"name":"buyoutPricePerToken","type":"uint256"},{"name":"tokenType","type":"uint8"},{"name":"listingType","type":"uint8"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	id, ok := new(big.Int).SetString(listingID, 10)
	if !ok {
		return nil, fmt.Errorf("invalid listing ID: %s", listingID)
	}

	result, err := c.call(ctx, marketplaceAddress, listingsABI, "listings", id)
	if err != nil {
		return nil, err
	}

	var out marketplaceListingResult
	if err := listingsABI.UnpackIntoInterface(&out, "listings", result); err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}

	if out.TokenOwner == (common.Address{}) {
		return nil, domain.ErrListingNotFound
	}

	return &domain.ListingSnapshot{
		ListingID:     out.ListingID.String(),
		TokenOwner:    out.TokenOwner.Hex(),
		AssetContract: out.AssetContract.Hex(),
		TokenNumber:   out.TokenID.String(),
		StartTime:     domain.ClampTimestamp(out.StartTime),
		EndTime:       domain.ClampTimestamp(out.EndTime),
		Quantity:      out.Quantity.String(),
		Currency:      out.Currency.Hex(),
		ReservePrice:  out.ReservePricePerToken.String(),
		BuyoutPrice:   out.BuyoutPricePerToken.String(),
		ListingType:   domain.ListingTypeFromCode(out.ListingType),
	}, nil
}

// marketplaceBidResult mirrors the winningBid(uint256) mapping getter
type marketplaceBidResult struct {
	ListingID           *big.Int
	Offeror             common.Address
	QuantityWanted      *big.Int
	Currency            common.Address
	PricePerToken       *big.Int
	ExpirationTimestamp *big.Int
}

// MarketplaceWinningBid reads the winning bid slot for an auction listing.
// An empty slot (zero offeror) maps to domain.ErrListingNotFound.
func (c *client) MarketplaceWinningBid(ctx context.Context, marketplaceAddress, listingID string) (*domain.BidView, error) {
	winningBidABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"","type":"uint256"}],"name":"winningBid","outputs":[{"name":"listingId","type":"uint256"},{"name":"offeror","type":"address"},{"name":"quantityWanted","type":"uint256"},{"name":"currency","type":"address"},{"name":"pricePerToken","type":"uint256"},{"name":"expirationTimestamp","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	id, ok := new(big.Int).SetString(listingID, 10)
	if !ok {
		return nil, fmt.Errorf("invalid listing ID: %s", listingID)
	}

	result, err := c.call(ctx, marketplaceAddress, winningBidABI, "winningBid", id)
	if err != nil {
		return nil, err
	}

	var out marketplaceBidResult
	if err := winningBidABI.UnpackIntoInterface(&out, "winningBid", result); err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}

	if out.Offeror == (common.Address{}) {
		return nil, domain.ErrListingNotFound
	}

	return &domain.BidView{
		ListingID:      out.ListingID.String(),
		Bidder:         out.Offeror.Hex(),
		QuantityWanted: out.QuantityWanted.String(),
		Currency:       out.Currency.Hex(),
		PricePerToken:  out.PricePerToken.String(),
		ExpirationTime: domain.ClampTimestamp(out.ExpirationTimestamp),
	}, nil
}

// MarketplaceOffer reads the offers(listingId, offeror) slot. An empty slot
// (zero offeror) maps to domain.ErrListingNotFound.
func (c *client) MarketplaceOffer(ctx context.Context, marketplaceAddress, listingID, offeror string) (*domain.BidView, error) {
	offersABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"","type":"uint256"},{"name":"","type":"address"}],"name":"offers","outputs":[{"name":"listingId","type":"uint256"},{"name":"offeror","type":"address"},{"name":"quantityWanted","type":"uint256"},{"name":"currency","type":"address"},{"name":"pricePerToken","type":"uint256"},{"name":"expirationTimestamp","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	id, ok := new(big.Int).SetString(listingID, 10)
	if !ok {
		return nil, fmt.Errorf("invalid listing ID: %s", listingID)
	}

	result, err := c.call(ctx, marketplaceAddress, offersABI, "offers", id, common.HexToAddress(offeror))
	if err != nil {
		return nil, err
	}

	var out marketplaceBidResult
	if err := offersABI.UnpackIntoInterface(&out, "offers", result); err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}

	if out.Offeror == (common.Address{}) {
		return nil, domain.ErrListingNotFound
	}

	return &domain.BidView{
		ListingID:      out.ListingID.String(),
		Bidder:         out.Offeror.Hex(),
		QuantityWanted: out.QuantityWanted.String(),
		Currency:       out.Currency.Hex(),
		PricePerToken:  out.PricePerToken.String(),
		ExpirationTime: domain.ClampTimestamp(out.ExpirationTimestamp),
	}, nil
}

// SupportsInterface probes the ERC-165 supportsInterface view call
func (c *client) SupportsInterface(ctx context.Context, contractAddress string, interfaceID [4]byte) (bool, error) {
	supportsABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"interfaceId","type":"bytes4"}],"name":"supportsInterface","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return false, fmt.Errorf("failed to parse ABI: %w", err)
	}

	result, err := c.call(ctx, contractAddress, supportsABI, "supportsInterface", interfaceID)
	if err != nil {
		// Contracts predating ERC-165 revert on the probe
		return false, nil
	}

	var supported bool
	if err := supportsABI.UnpackIntoInterface(&supported, "supportsInterface", result); err != nil {
		return false, fmt.Errorf("failed to unpack result: %w", err)
	}
	return supported, nil
}

// ERC721TokenURI fetches the tokenURI from an ERC721 contract
func (c *client) ERC721TokenURI(ctx context.Context, contractAddress, tokenNumber string) (string, error) {
	// ERC721 tokenURI function signature: tokenURI(uint256) returns (string)
	tokenURIABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	tokenID, ok := new(big.Int).SetString(tokenNumber, 10)
	if !ok {
		return "", fmt.Errorf("invalid token number: %s", tokenNumber)
	}

	result, err := c.call(ctx, contractAddress, tokenURIABI, "tokenURI", tokenID)
	if err != nil {
		return "", err
	}

	var uri string
	if err := tokenURIABI.UnpackIntoInterface(&uri, "tokenURI", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}
	return uri, nil
}

// ERC1155URI fetches the uri from an ERC1155 contract
func (c *client) ERC1155URI(ctx context.Context, contractAddress, tokenNumber string) (string, error) {
	// ERC1155 uri function signature: uri(uint256) returns (string)
	uriABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"id","type":"uint256"}],"name":"uri","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	tokenID, ok := new(big.Int).SetString(tokenNumber, 10)
	if !ok {
		return "", fmt.Errorf("invalid token number: %s", tokenNumber)
	}

	result, err := c.call(ctx, contractAddress, uriABI, "uri", tokenID)
	if err != nil {
		return "", err
	}

	var uri string
	if err := uriABI.UnpackIntoInterface(&uri, "uri", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}
	return uri, nil
}

// ERC721OwnerOf fetches the current owner of an ERC721 token
func (c *client) ERC721OwnerOf(ctx context.Context, contractAddress, tokenNumber string) (string, error) {
	// ERC721 ownerOf function signature: ownerOf(uint256) returns (address)
	ownerOfABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	tokenID, ok := new(big.Int).SetString(tokenNumber, 10)
	if !ok {
		return "", fmt.Errorf("invalid token number: %s", tokenNumber)
	}

	result, err := c.call(ctx, contractAddress, ownerOfABI, "ownerOf", tokenID)
	if err != nil {
		return "", err
	}

	var owner common.Address
	if err := ownerOfABI.UnpackIntoInterface(&owner, "ownerOf", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}
	return owner.Hex(), nil
}

// ContractOwner probes the Ownable owner() view call. Contracts without an
// owner() function revert, which surfaces as a call error.
func (c *client) ContractOwner(ctx context.Context, contractAddress string) (string, error) {
	ownerABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[],"name":"owner","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	result, err := c.call(ctx, contractAddress, ownerABI, "owner")
	if err != nil {
		return "", err
	}

	var owner common.Address
	if err := ownerABI.UnpackIntoInterface(&owner, "owner", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}
	return owner.Hex(), nil
}

// DeploymentBlock binary searches for the first block where the contract has
// code. sort.Search finds the smallest index i in [0, n) where f(i) is true;
// code presence is monotone over block height, so the search is sound.
func (c *client) DeploymentBlock(ctx context.Context, contractAddress string, minBlock uint64) (uint64, error) {
	addr := common.HexToAddress(contractAddress)

	latestHeader, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest header: %w", err)
	}
	latestBlock := latestHeader.Number.Uint64()

	if minBlock > latestBlock {
		return 0, fmt.Errorf("minBlock (%d) is greater than latest block (%d)", minBlock, latestBlock)
	}

	searchRange := int(latestBlock - minBlock + 1)
	var searchErr error
	relativeBlock := uint64(sort.Search(searchRange, func(i int) bool {
		blockNum := minBlock + uint64(i)
		code, err := c.client.CodeAt(ctx, addr, new(big.Int).SetUint64(blockNum))
		if err != nil {
			searchErr = err
			return false
		}
		return len(code) > 0
	}))

	if relativeBlock >= uint64(searchRange) {
		if searchErr != nil {
			return 0, fmt.Errorf("failed to find contract (encountered errors during search): %w", searchErr)
		}
		return 0, fmt.Errorf("contract not found: %s (searched blocks %d-%d)", contractAddress, minBlock, latestBlock)
	}

	return minBlock + relativeBlock, nil
}

// ContractDeployer finds the deployment block, then scans its transactions for
// the contract creation and resolves the sender
func (c *client) ContractDeployer(ctx context.Context, contractAddress string, minBlock uint64) (string, error) {
	addr := common.HexToAddress(contractAddress)

	creationBlock, err := c.DeploymentBlock(ctx, contractAddress, minBlock)
	if err != nil {
		return "", err
	}

	block, err := c.client.BlockByNumber(ctx, new(big.Int).SetUint64(creationBlock))
	if err != nil {
		return "", fmt.Errorf("failed to get block %d: %w", creationBlock, err)
	}

	for _, tx := range block.Transactions() {
		// Contract creation transactions have nil To address
		if tx.To() != nil {
			continue
		}

		receipt, err := c.client.TransactionReceipt(ctx, tx.Hash())
		if err != nil {
			continue
		}

		if receipt.ContractAddress == addr {
			sender, err := c.client.TransactionSender(ctx, tx, block.Hash(), receipt.TransactionIndex)
			if err != nil {
				return "", fmt.Errorf("failed to get transaction sender: %w", err)
			}
			return sender.Hex(), nil
		}
	}

	// Factory-deployed contracts have no direct creation transaction in the
	// block; those callers fall back to a placeholder creator
	return "", fmt.Errorf("contract creation transaction not found for %s at block %d", contractAddress, creationBlock)
}

// Close closes the connection
func (c *client) Close() {
	c.client.Close()
}
