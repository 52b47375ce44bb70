package domain

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainPolygonMainnet  Chain = "eip155:137"
	ChainPolygonAmoy     Chain = "eip155:80002"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainPolygonMainnet ||
		chain == ChainPolygonAmoy
}

// ParseChain converts a numeric EVM chain ID into its CAIP-2 form
func ParseChain(numericID string) (Chain, error) {
	id, err := strconv.ParseUint(numericID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid chain id %q: %w", numericID, err)
	}
	chain := Chain(fmt.Sprintf("eip155:%d", id))
	if !IsValidChain(chain) {
		return "", fmt.Errorf("unsupported chain id %q", numericID)
	}
	return chain, nil
}

// NumericID returns the EVM chain ID portion of the CAIP-2 identifier
func (c Chain) NumericID() uint64 {
	parts := strings.SplitN(string(c), ":", 2)
	if len(parts) != 2 {
		return 0
	}
	id, _ := strconv.ParseUint(parts[1], 10, 64)
	return id
}

// TokenStandard represents the token contract type of a tracked collection
type TokenStandard string

const (
	StandardERC721  TokenStandard = "erc721"
	StandardERC1155 TokenStandard = "erc1155"
)

// Interface IDs probed via supportsInterface during collection import
var (
	// InterfaceIDERC721 is the ERC-165 interface ID for ERC-721 (0x80ac58cd)
	InterfaceIDERC721 = [4]byte{0x80, 0xac, 0x58, 0xcd}
	// InterfaceIDERC1155 is the ERC-165 interface ID for ERC-1155 (0xd9b67a26)
	InterfaceIDERC1155 = [4]byte{0xd9, 0xb6, 0x7a, 0x26}
)

// ZeroAddress is the Ethereum zero address, the mint/burn counterparty
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// MaxTimestamp is the sentinel used when a chain-native time value exceeds
// what the store can represent. Listing end times of 2^256-1 ("never expires")
// are clamped to this instead of overflowing.
var MaxTimestamp = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// ClampTimestamp converts a chain-native seconds value to a store timestamp,
// clamping anything beyond MaxTimestamp
func ClampTimestamp(seconds *big.Int) time.Time {
	if seconds == nil || !seconds.IsInt64() {
		// Anything beyond int64 seconds is far past year 9999
		return MaxTimestamp
	}
	t := time.Unix(seconds.Int64(), 0).UTC()
	if t.After(MaxTimestamp) {
		return MaxTimestamp
	}
	return t
}

// NormalizeAddress normalizes an EVM address to its EIP-55 checksum form
func NormalizeAddress(address string) string {
	if common.IsHexAddress(address) {
		return common.HexToAddress(address).Hex()
	}
	return address
}

// IsZeroAddress reports whether the address is the zero address
func IsZeroAddress(address string) bool {
	return NormalizeAddress(address) == ZeroAddress
}
