package reconciler

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/mintstream/marketplace-indexer/internal/adapter"
	"github.com/mintstream/marketplace-indexer/internal/domain"
	ethclient "github.com/mintstream/marketplace-indexer/internal/ethereum"
	"github.com/mintstream/marketplace-indexer/internal/logger"
	"github.com/mintstream/marketplace-indexer/internal/metadata"
	"github.com/mintstream/marketplace-indexer/internal/notify"
	"github.com/mintstream/marketplace-indexer/internal/store"
)

const viewCallRetries = 3

// SaleNotification is published on sale.created after the sale commits
type SaleNotification struct {
	Chain      domain.Chain `json:"chain"`
	ListingID  string       `json:"listing_id"`
	TxHash     string       `json:"tx_hash"`
	Buyer      string       `json:"buyer"`
	Seller     string       `json:"seller"`
	Quantity   string       `json:"quantity"`
	TotalPrice string       `json:"total_price"`
	Currency   string       `json:"currency"`
	Timestamp  time.Time    `json:"timestamp"`
}

// OfferNotification is published on offer.created after the offer commits
type OfferNotification struct {
	Chain            domain.Chain `json:"chain"`
	ListingID        string       `json:"listing_id"`
	TxHash           string       `json:"tx_hash"`
	Offeror          string       `json:"offeror"`
	QuantityWanted   string       `json:"quantity_wanted"`
	TotalOfferAmount string       `json:"total_offer_amount"`
	Currency         string       `json:"currency"`
	Timestamp        time.Time    `json:"timestamp"`
}

// Reconciler folds decoded chain events into store state. Every handler is
// idempotent: duplicate deliveries are absorbed by the store's uniqueness
// keys, and listing mutations re-read the authoritative struct from the chain
// instead of trusting partial event payloads. Notifications publish only
// after the owning transaction commits.
type Reconciler struct {
	chain       domain.Chain
	marketplace string
	client      ethclient.Client
	store       store.Store
	metadata    metadata.Resolver
	publisher   notify.Publisher
	json        adapter.JSON
}

func New(chain domain.Chain, marketplaceAddress string, client ethclient.Client, st store.Store, resolver metadata.Resolver, publisher notify.Publisher, jsonAdapter adapter.JSON) *Reconciler {
	return &Reconciler{
		chain:       chain,
		marketplace: domain.NormalizeAddress(marketplaceAddress),
		client:      client,
		store:       st,
		metadata:    resolver,
		publisher:   publisher,
		json:        jsonAdapter,
	}
}

// Process applies one decoded event to the store
func (r *Reconciler) Process(ctx context.Context, event *domain.Event) error {
	switch event.Kind {
	case domain.EventKindTransfer:
		return r.handleTransfer(ctx, event)
	case domain.EventKindListingAdded:
		return r.handleListingAdded(ctx, event)
	case domain.EventKindListingUpdated:
		return r.refreshListing(ctx, event.ListingRef.ListingID, event.Timestamp)
	case domain.EventKindListingRemoved:
		return r.store.CancelListing(ctx, r.chain, event.ListingRef.ListingID, event.Timestamp)
	case domain.EventKindNewSale:
		return r.handleNewSale(ctx, event)
	case domain.EventKindNewOffer:
		return r.handleNewOffer(ctx, event)
	case domain.EventKindAuctionClosed:
		return r.handleAuctionClosed(ctx, event)
	case domain.EventKindRoyaltyPaid:
		return r.handleRoyaltyPaid(ctx, event)
	default:
		// Decoder guarantees a known kind; anything else is a programming error
		return fmt.Errorf("unhandled event kind: %s", event.Kind)
	}
}

func (r *Reconciler) handleTransfer(ctx context.Context, event *domain.Event) error {
	raw, err := r.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	input := store.ApplyTransferInput{
		Event:    *event,
		Transfer: *event.Transfer,
		Raw:      raw,
	}

	// Resolve metadata for fresh single mints so the item row starts with a
	// real name. Batch mints and resolution failures fall back to the store's
	// placeholder.
	if r.metadata != nil && domain.IsZeroAddress(event.Transfer.FromAddress) && len(event.Transfer.Entries) == 1 {
		meta := r.metadata.Resolve(ctx, event.ContractAddress, event.Transfer.Entries[0].TokenNumber, event.Transfer.Standard)
		input.ItemSeed = &store.ItemSeed{
			Standard:       event.Transfer.Standard,
			CreatorAddress: event.Transfer.ToAddress,
			Name:           meta.Name,
			ImageURI:       meta.ImageURI,
			MetadataURI:    meta.MetadataURI,
		}
	}

	_, err = r.store.ApplyTransfer(ctx, input)
	return err
}

func (r *Reconciler) handleListingAdded(ctx context.Context, event *domain.Event) error {
	raw, err := r.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	created, err := r.store.CreateListing(ctx, store.CreateListingInput{
		Chain:     r.chain,
		Snapshot:  event.ListingAdded.Listing,
		Timestamp: event.Timestamp,
		Raw:       raw,
	})
	if err != nil {
		return err
	}
	if !created {
		logger.InfoCtx(ctx, "Listing not created (duplicate or unknown token)",
			zap.String("listingID", event.ListingAdded.Listing.ListingID),
			zap.String("assetContract", event.ListingAdded.Listing.AssetContract))
	}
	return nil
}

// refreshListing overwrites the listing's mutable fields from the chain. The
// triggering event may carry only part of the listing, so the full struct is
// re-read via the listings(id) view call.
func (r *Reconciler) refreshListing(ctx context.Context, listingID string, at time.Time) error {
	snapshot, err := r.fetchListing(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			// The listing slot was already cleared on chain
			logger.WarnCtx(ctx, "Listing no longer on chain, skipping refresh",
				zap.String("listingID", listingID))
			return nil
		}
		return err
	}
	return r.store.RefreshListing(ctx, r.chain, *snapshot, at)
}

func (r *Reconciler) handleNewSale(ctx context.Context, event *domain.Event) error {
	sale := event.Sale

	// The event does not carry the payment currency; take it from the stored
	// listing when we have one
	currency := ""
	listing, err := r.store.GetListing(ctx, r.chain, sale.ListingID)
	switch {
	case err == nil:
		currency = listing.Currency
	case errors.Is(err, domain.ErrListingNotFound):
	default:
		return err
	}

	created, err := r.store.CreateSale(ctx, store.CreateSaleInput{
		Chain:      r.chain,
		TxHash:     event.TxHash,
		ListingID:  sale.ListingID,
		Buyer:      sale.Buyer,
		Seller:     sale.Lister,
		Quantity:   sale.QuantityBought,
		TotalPrice: sale.TotalPricePaid,
		Currency:   currency,
		Timestamp:  event.Timestamp,
	})
	if err != nil {
		return err
	}
	if !created {
		return nil // duplicate delivery
	}

	r.publish(ctx, notify.SubjectSaleCreated, SaleNotification{
		Chain:      r.chain,
		ListingID:  sale.ListingID,
		TxHash:     event.TxHash,
		Buyer:      sale.Buyer,
		Seller:     sale.Lister,
		Quantity:   sale.QuantityBought,
		TotalPrice: sale.TotalPricePaid,
		Currency:   currency,
		Timestamp:  event.Timestamp,
	})
	return nil
}

func (r *Reconciler) handleNewOffer(ctx context.Context, event *domain.Event) error {
	offer := event.Offer

	if offer.ListingType == domain.ListingTypeAuction {
		return r.handleBid(ctx, event)
	}

	// The event does not carry the offer's expiration; read it from the
	// offers(id, addr) slot, falling back to the sentinel
	expiration := offer.ExpirationTime
	view, err := r.fetchOffer(ctx, offer.ListingID, offer.Offeror)
	if err == nil {
		expiration = view.ExpirationTime
	} else if !errors.Is(err, domain.ErrListingNotFound) {
		return err
	}

	created, err := r.store.CreateOffer(ctx, store.CreateOfferInput{
		Chain:            r.chain,
		TxHash:           event.TxHash,
		ListingID:        offer.ListingID,
		Offeror:          offer.Offeror,
		QuantityWanted:   offer.QuantityWanted,
		TotalOfferAmount: offer.TotalOfferAmount,
		Currency:         offer.Currency,
		ExpirationTime:   expiration,
		Timestamp:        event.Timestamp,
	})
	if err != nil {
		return err
	}

	if err := r.refreshListing(ctx, offer.ListingID, event.Timestamp); err != nil {
		return err
	}
	if !created {
		return nil // duplicate delivery
	}

	r.publish(ctx, notify.SubjectOfferCreated, OfferNotification{
		Chain:            r.chain,
		ListingID:        offer.ListingID,
		TxHash:           event.TxHash,
		Offeror:          offer.Offeror,
		QuantityWanted:   offer.QuantityWanted,
		TotalOfferAmount: offer.TotalOfferAmount,
		Currency:         offer.Currency,
		Timestamp:        event.Timestamp,
	})
	return nil
}

// handleBid records an offer against an auction listing as a bid. Bids are
// append-only history; the authoritative winning bid lives on chain.
func (r *Reconciler) handleBid(ctx context.Context, event *domain.Event) error {
	offer := event.Offer

	pricePerToken := divide(offer.TotalOfferAmount, offer.QuantityWanted)
	if view, err := r.fetchWinningBid(ctx, offer.ListingID); err == nil &&
		domain.NormalizeAddress(view.Bidder) == domain.NormalizeAddress(offer.Offeror) {
		pricePerToken = view.PricePerToken
	}

	if err := r.store.CreateBid(ctx, store.CreateBidInput{
		Chain:          r.chain,
		TxHash:         event.TxHash,
		ListingID:      offer.ListingID,
		Bidder:         offer.Offeror,
		QuantityWanted: offer.QuantityWanted,
		PricePerToken:  pricePerToken,
		Currency:       offer.Currency,
		Timestamp:      event.Timestamp,
	}); err != nil {
		return err
	}

	return r.refreshListing(ctx, offer.ListingID, event.Timestamp)
}

func (r *Reconciler) handleAuctionClosed(ctx context.Context, event *domain.Event) error {
	closed := event.AuctionClosed

	if closed.Cancelled {
		return r.store.CancelListing(ctx, r.chain, closed.ListingID, event.Timestamp)
	}

	if domain.NormalizeAddress(closed.Closer) == domain.NormalizeAddress(closed.AuctionCreator) {
		return r.store.MarkListingClosedByLister(ctx, r.chain, closed.ListingID, event.Timestamp)
	}

	// Closed by the winning bidder: the auction settled. Record the sale at
	// the winning bid's price times the listed quantity.
	listing, err := r.store.GetListing(ctx, r.chain, closed.ListingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			logger.WarnCtx(ctx, "Auction closed for unknown listing",
				zap.String("listingID", closed.ListingID))
			return nil
		}
		return err
	}

	pricePerToken := listing.ReservePricePerToken
	if view, err := r.fetchWinningBid(ctx, closed.ListingID); err == nil {
		pricePerToken = view.PricePerToken
	} else if !errors.Is(err, domain.ErrListingNotFound) {
		return err
	}
	totalPrice := multiply(pricePerToken, listing.Quantity)

	created, err := r.store.CreateSale(ctx, store.CreateSaleInput{
		Chain:      r.chain,
		TxHash:     event.TxHash,
		ListingID:  closed.ListingID,
		Buyer:      closed.WinningBidder,
		Seller:     closed.AuctionCreator,
		Quantity:   listing.Quantity,
		TotalPrice: totalPrice,
		Currency:   listing.Currency,
		Timestamp:  event.Timestamp,
	})
	if err != nil {
		return err
	}
	if !created {
		return nil // duplicate delivery
	}

	r.publish(ctx, notify.SubjectSaleCreated, SaleNotification{
		Chain:      r.chain,
		ListingID:  closed.ListingID,
		TxHash:     event.TxHash,
		Buyer:      closed.WinningBidder,
		Seller:     closed.AuctionCreator,
		Quantity:   listing.Quantity,
		TotalPrice: totalPrice,
		Currency:   listing.Currency,
		Timestamp:  event.Timestamp,
	})
	return nil
}

func (r *Reconciler) handleRoyaltyPaid(ctx context.Context, event *domain.Event) error {
	royalty := event.Royalty
	return r.store.CreateRoyaltyPayments(ctx, store.CreateRoyaltyPaymentsInput{
		Chain:       r.chain,
		TxHash:      event.TxHash,
		ListingID:   royalty.ListingID,
		Recipients:  royalty.Recipients,
		TotalPayout: royalty.TotalPayout,
		Currency:    royalty.Currency,
		Timestamp:   event.Timestamp,
	})
}

// fetchListing reads the listing struct from the chain with bounded retries
// for transient RPC failures
func (r *Reconciler) fetchListing(ctx context.Context, listingID string) (*domain.ListingSnapshot, error) {
	var snapshot *domain.ListingSnapshot
	err := r.retryView(ctx, func() error {
		var err error
		snapshot, err = r.client.MarketplaceListing(ctx, r.marketplace, listingID)
		return err
	})
	return snapshot, err
}

func (r *Reconciler) fetchOffer(ctx context.Context, listingID, offeror string) (*domain.BidView, error) {
	var view *domain.BidView
	err := r.retryView(ctx, func() error {
		var err error
		view, err = r.client.MarketplaceOffer(ctx, r.marketplace, listingID, offeror)
		return err
	})
	return view, err
}

func (r *Reconciler) fetchWinningBid(ctx context.Context, listingID string) (*domain.BidView, error) {
	var view *domain.BidView
	err := r.retryView(ctx, func() error {
		var err error
		view, err = r.client.MarketplaceWinningBid(ctx, r.marketplace, listingID)
		return err
	})
	return view, err
}

func (r *Reconciler) retryView(ctx context.Context, op func() error) error {
	return backoff.Retry(func() error {
		err := op()
		if errors.Is(err, domain.ErrListingNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), viewCallRetries), ctx))
}

// publish emits a notification after the owning transaction has committed.
// Publish failures are logged, not propagated: the store is already
// consistent and replaying the event would be absorbed as a duplicate.
func (r *Reconciler) publish(ctx context.Context, subject string, payload interface{}) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, subject, payload); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("subject", subject))
	}
}

func multiply(a, b string) string {
	x, okA := new(big.Int).SetString(a, 10)
	y, okB := new(big.Int).SetString(b, 10)
	if !okA || !okB {
		return "0"
	}
	return new(big.Int).Mul(x, y).String()
}

func divide(a, b string) string {
	x, okA := new(big.Int).SetString(a, 10)
	y, okB := new(big.Int).SetString(b, 10)
	if !okA || !okB || y.Sign() == 0 {
		return a
	}
	return new(big.Int).Quo(x, y).String()
}
