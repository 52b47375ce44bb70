package domain

import "errors"

var (
	// ErrConnectionLost is returned when the chain subscription drops; the
	// process is expected to exit and be restarted by its supervisor
	ErrConnectionLost = errors.New("chain connection lost")

	// ErrItemNotFound is returned when a referenced item is not indexed
	ErrItemNotFound = errors.New("item not found")

	// ErrListingNotFound is returned when a listing is not indexed
	ErrListingNotFound = errors.New("listing not found")

	// ErrContractNotFound is returned when no deployed bytecode is found for
	// an address within the searched block range
	ErrContractNotFound = errors.New("contract not found")

	// ErrUnsupportedContract is returned when a contract matches neither the
	// ERC-721 nor the ERC-1155 interface ID
	ErrUnsupportedContract = errors.New("unsupported contract standard")

	// ErrImportInProgress is returned when an import is already running for a
	// (contract, chain) pair
	ErrImportInProgress = errors.New("import already in progress")
)
