package notify

import (
	"context"
)

// Notification subjects published after a reconciliation transaction commits.
// Delivery is at-most-once: a crash between commit and publish loses the
// notification, since the ledger absorbs the replayed event before the
// reconciler reaches publish again. Consumers needing the full history read
// the store, not the stream.
const (
	SubjectSaleCreated    = "sale.created"
	SubjectOfferCreated   = "offer.created"
	SubjectImportFinished = "import.finished"
)

// Publisher publishes indexer notifications to downstream consumers
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// Publish sends a notification on the given subject
	Publish(ctx context.Context, subject string, payload interface{}) error
	// Close closes the connection
	Close()
}

// NoopPublisher discards all notifications. Used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() Publisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(_ context.Context, _ string, _ interface{}) error {
	return nil
}

func (p *NoopPublisher) Close() {}
