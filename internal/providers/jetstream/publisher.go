package jetstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-placement-indexer/internal/adapter"
	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
	"github.com/feral-file/ff-placement-indexer/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// DuplicateWindow is how long the stream remembers message ids
	DuplicateWindow time.Duration
}

type publisher struct {
	nc adapter.NatsConn
	js adapter.JetStream
}

// NewPublisher connects to NATS and makes sure the placement stream exists
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream) (messaging.Publisher, error) {
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

	duplicates := cfg.DuplicateWindow
	if duplicates == 0 {
		duplicates = 10 * time.Minute
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       cfg.StreamName,
		Subjects:   []string{messaging.SubjectAll},
		Storage:    jetstream.FileStorage,
		Duplicates: duplicates,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc: nc,
		js: js,
	}, nil
}

// PublishPlacements publishes every record, a failed record does not stop the others
func (p *publisher) PublishPlacements(ctx context.Context, records []domain.ValidatedPlacementRecord) error {
	var errs []error
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to marshal placement %s: %w", record.EventKey(), err))
			continue
		}

		subject := messaging.Subject(record)
		ack, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(record.EventKey()))
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to publish placement %s: %w", record.EventKey(), err))
			continue
		}

		logger.DebugCtx(ctx, "Published placement",
			zap.String("subject", subject),
			zap.String("eventKey", record.EventKey()),
			zap.Uint64("sequence", ack.Sequence),
			zap.Bool("duplicate", ack.Duplicate))
	}

	return errors.Join(errs...)
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
