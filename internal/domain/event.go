package domain

import (
	"fmt"
	"time"
)

// EventKind identifies the shape of a decoded chain event. The set is closed:
// the decoder maps every known topic0 to exactly one kind and returns nil for
// anything else.
type EventKind string

const (
	EventKindTransfer       EventKind = "transfer"
	EventKindListingAdded   EventKind = "listing_added"
	EventKindListingUpdated EventKind = "listing_updated"
	EventKindListingRemoved EventKind = "listing_removed"
	EventKindNewSale        EventKind = "new_sale"
	EventKindNewOffer       EventKind = "new_offer"
	EventKindAuctionClosed  EventKind = "auction_closed"
	EventKindRoyaltyPaid    EventKind = "royalty_paid"
)

// ListingType distinguishes fixed-price listings from auctions
type ListingType string

const (
	ListingTypeDirect  ListingType = "direct"
	ListingTypeAuction ListingType = "auction"
)

// ListingTypeFromCode maps the contract's uint8 listing type to its name
func ListingTypeFromCode(code uint8) ListingType {
	if code == 1 {
		return ListingTypeAuction
	}
	return ListingTypeDirect
}

// TransferEntry is a single (tokenId, quantity) movement within a transfer
// log. Single transfers carry one entry; TransferBatch carries several.
type TransferEntry struct {
	TokenNumber string `json:"token_number"`
	Quantity    string `json:"quantity"`
}

// TransferPayload is the decoded form of Transfer / TransferSingle /
// TransferBatch logs. All entries share the log's ledger key and are applied
// in one transaction.
type TransferPayload struct {
	Standard    TokenStandard   `json:"standard"`
	FromAddress string          `json:"from_address"`
	ToAddress   string          `json:"to_address"`
	Operator    string          `json:"operator,omitempty"`
	Entries     []TransferEntry `json:"entries"`
}

// ListingSnapshot mirrors the marketplace contract's Listing struct. It is
// carried by ListingAdded and by authoritative re-fetches via the listings(id)
// view call.
type ListingSnapshot struct {
	ListingID     string      `json:"listing_id"`
	TokenOwner    string      `json:"token_owner"`
	AssetContract string      `json:"asset_contract"`
	TokenNumber   string      `json:"token_number"`
	StartTime     time.Time   `json:"start_time"`
	EndTime       time.Time   `json:"end_time"`
	Quantity      string      `json:"quantity"`
	Currency      string      `json:"currency"`
	ReservePrice  string      `json:"reserve_price_per_token"`
	BuyoutPrice   string      `json:"buyout_price_per_token"`
	ListingType   ListingType `json:"listing_type"`
}

// ListingAddedPayload carries the full listing struct emitted at creation
type ListingAddedPayload struct {
	Listing ListingSnapshot `json:"listing"`
	Lister  string          `json:"lister"`
}

// ListingRefPayload is shared by ListingUpdated and ListingRemoved, which only
// carry the listing ID and the acting address
type ListingRefPayload struct {
	ListingID string `json:"listing_id"`
	Actor     string `json:"actor"`
}

// SalePayload is the decoded NewSale event
type SalePayload struct {
	ListingID      string `json:"listing_id"`
	AssetContract  string `json:"asset_contract"`
	Lister         string `json:"lister"`
	Buyer          string `json:"buyer"`
	QuantityBought string `json:"quantity_bought"`
	TotalPricePaid string `json:"total_price_paid"`
}

// OfferPayload is the decoded NewOffer event
type OfferPayload struct {
	ListingID        string      `json:"listing_id"`
	Offeror          string      `json:"offeror"`
	ListingType      ListingType `json:"listing_type"`
	QuantityWanted   string      `json:"quantity_wanted"`
	TotalOfferAmount string      `json:"total_offer_amount"`
	Currency         string      `json:"currency"`
	ExpirationTime   time.Time   `json:"expiration_time"`
}

// AuctionClosedPayload is the decoded AuctionClosed event
type AuctionClosedPayload struct {
	ListingID      string `json:"listing_id"`
	Closer         string `json:"closer"`
	Cancelled      bool   `json:"cancelled"`
	AuctionCreator string `json:"auction_creator"`
	WinningBidder  string `json:"winning_bidder"`
}

// BidView is a winning bid read back from the marketplace contract's
// winningBid view call
type BidView struct {
	ListingID      string    `json:"listing_id"`
	Bidder         string    `json:"bidder"`
	QuantityWanted string    `json:"quantity_wanted"`
	Currency       string    `json:"currency"`
	PricePerToken  string    `json:"price_per_token"`
	ExpirationTime time.Time `json:"expiration_time"`
}

// RoyaltyRecipient is one (recipient, bps) pair of a royalty distribution
type RoyaltyRecipient struct {
	Recipient string `json:"recipient"`
	Bps       uint32 `json:"bps"`
}

// RoyaltyPayload is the decoded RoyaltyPaid event from the payout distributor
type RoyaltyPayload struct {
	ListingID   string             `json:"listing_id"`
	Payer       string             `json:"payer"`
	Recipients  []RoyaltyRecipient `json:"recipients"`
	TotalPayout string             `json:"total_payout"`
	Currency    string             `json:"currency"`
}

// Event is one decoded chain log. Exactly one payload pointer is non-nil,
// matching Kind.
type Event struct {
	Kind            EventKind `json:"kind"`
	Chain           Chain     `json:"chain"`
	ContractAddress string    `json:"contract_address"`
	TxHash          string    `json:"tx_hash"`
	TxIndex         uint64    `json:"tx_index"`
	LogIndex        uint64    `json:"log_index"`
	BlockNumber     uint64    `json:"block_number"`
	BlockHash       string    `json:"block_hash"`
	// Timestamp is the containing block's timestamp, stamped by the caller
	// after decoding (the decoder itself never touches the network)
	Timestamp time.Time `json:"timestamp"`

	Transfer      *TransferPayload      `json:"transfer,omitempty"`
	ListingAdded  *ListingAddedPayload  `json:"listing_added,omitempty"`
	ListingRef    *ListingRefPayload    `json:"listing_ref,omitempty"`
	Sale          *SalePayload          `json:"sale,omitempty"`
	Offer         *OfferPayload         `json:"offer,omitempty"`
	AuctionClosed *AuctionClosedPayload `json:"auction_closed,omitempty"`
	Royalty       *RoyaltyPayload       `json:"royalty,omitempty"`
}

// LedgerKey returns the idempotency key identifying this log
func (e *Event) LedgerKey() string {
	return fmt.Sprintf("%s:%s:%d:%d", e.TxHash, e.Chain, e.TxIndex, e.LogIndex)
}
