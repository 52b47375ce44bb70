package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/mintstream/marketplace-indexer/internal/adapter"
	"github.com/mintstream/marketplace-indexer/internal/logger"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type jetStreamPublisher struct {
	nc            adapter.NatsConn
	js            adapter.JetStream
	subjectPrefix string
	json          adapter.JSON
}

// NewJetStreamPublisher creates a NATS JetStream publisher. Subjects are
// prefixed per chain, e.g. "indexer.eip155-1.sale.created".
func NewJetStreamPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &jetStreamPublisher{
		nc:            nc,
		js:            js,
		subjectPrefix: cfg.SubjectPrefix,
		json:          jsonAdapter,
	}, nil
}

func (p *jetStreamPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	data, err := p.json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	full := subject
	if p.subjectPrefix != "" {
		full = fmt.Sprintf("%s.%s", p.subjectPrefix, subject)
	}

	if _, err := p.js.Publish(ctx, full, data); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

func (p *jetStreamPublisher) Close() {
	if p.nc == nil {
		return
	}
	p.nc.Close()
}
