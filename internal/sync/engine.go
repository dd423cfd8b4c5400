package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-placement-indexer/internal/asset"
	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
	"github.com/feral-file/ff-placement-indexer/internal/messaging"
	"github.com/feral-file/ff-placement-indexer/internal/placement"
	"github.com/feral-file/ff-placement-indexer/internal/store"
	"github.com/feral-file/ff-placement-indexer/internal/webhook"
)

// DefaultCursorName is the cursor of the placement registry
const DefaultCursorName = "placement_registry"

// EventSource returns the registry events above a cursor
//
//go:generate mockgen -source=engine.go -destination=../mocks/sync_engine.go -package=mocks -mock_names=EventSource=MockEventSource,Engine=MockSyncEngine
type EventSource interface {
	// FetchEventsSince returns the events with block > cursor up to the current head
	FetchEventsSince(ctx context.Context, cursor uint64) (*domain.EventBatch, error)
}

// Engine runs sync passes
type Engine interface {
	// Run performs one sync pass
	Run(ctx context.Context) (*Summary, error)
}

// Config holds the sync engine configuration
type Config struct {
	// CursorName identifies the cursor row, defaults to DefaultCursorName
	CursorName string
	// VerifyConcurrency bounds concurrent ownership checks
	VerifyConcurrency int
	// VerifyTimeout bounds one ownership check, zero means no timeout
	VerifyTimeout time.Duration
	// DispatchTimeout bounds the detached webhook dispatch and stream publication
	DispatchTimeout time.Duration
}

// Summary is the result of one sync pass
type Summary struct {
	// BlockNumber is the cursor after the pass
	BlockNumber uint64
	// Events is the number of fetched events
	Events int
	// Persisted is the number of records written
	Persisted int
	// Owned is the number of persisted records placed by the asset owner
	Owned int
	// Failed is the number of events that hold the cursor back and will be retried
	Failed int
	// Skipped is the number of malformed events that will never be stored
	Skipped int
	// Dispatched receives the outcome of the detached webhook dispatch and stream publication, then closes.
	// It is closed without a value when nothing was dispatched.
	Dispatched <-chan error
}

type engine struct {
	config     Config
	source     EventSource
	decoder    placement.Decoder
	registry   asset.Registry
	store      store.Store
	dispatcher webhook.Dispatcher
	publisher  messaging.Publisher
}

// NewEngine creates a sync engine. publisher may be nil.
func NewEngine(
	config Config,
	source EventSource,
	decoder placement.Decoder,
	registry asset.Registry,
	st store.Store,
	dispatcher webhook.Dispatcher,
	publisher messaging.Publisher,
) Engine {
	if config.CursorName == "" {
		config.CursorName = DefaultCursorName
	}
	if config.VerifyConcurrency <= 0 {
		config.VerifyConcurrency = 8
	}
	if config.DispatchTimeout <= 0 {
		config.DispatchTimeout = time.Minute
	}

	return &engine{
		config:     config,
		source:     source,
		decoder:    decoder,
		registry:   registry,
		store:      st,
		dispatcher: dispatcher,
		publisher:  publisher,
	}
}

// pending is a decoded event waiting for verification
type pending struct {
	record *domain.PlacementRecord
	owned  bool
	err    error
	done   bool
}

func (e *engine) Run(ctx context.Context) (*Summary, error) {
	cursor, err := e.store.GetSyncCursor(ctx, e.config.CursorName)
	if err != nil {
		return nil, fmt.Errorf("failed to get sync cursor: %w", err)
	}

	batch, err := e.source.FetchEventsSince(ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events since block %d: %w", cursor, err)
	}

	summary := &Summary{Events: len(batch.Events)}
	head := max(cursor, batch.CurrentBlockNumber)

	// Lowest block that must be retried, head+1 when nothing failed
	holdBlock := head + 1
	hold := func(blockNumber uint64) {
		summary.Failed++
		holdBlock = min(holdBlock, blockNumber)
	}

	var pendings []*pending
	for _, event := range batch.Events {
		record, err := e.decoder.Decode(event)
		if err != nil {
			var decodeErr *domain.DecodeError
			switch {
			case errors.Is(err, domain.ErrUnknownAssetKind):
				// An unknown kind needs a deployment, keep the event until then
				logger.ErrorCtx(ctx, err,
					zap.Uint64("blockNumber", event.BlockNumber),
					zap.Uint("logIndex", event.LogIndex),
					zap.String("assetType", event.Asset.AssetType.Hex()))
				hold(event.BlockNumber)
			case errors.As(err, &decodeErr):
				logger.WarnCtx(ctx, "Skipping malformed placement event",
					zap.Error(err),
					zap.Uint64("blockNumber", event.BlockNumber),
					zap.Uint("logIndex", event.LogIndex))
				summary.Skipped++
			default:
				logger.ErrorCtx(ctx, fmt.Errorf("failed to decode placement event: %w", err),
					zap.Uint64("blockNumber", event.BlockNumber),
					zap.Uint("logIndex", event.LogIndex))
				hold(event.BlockNumber)
			}
			continue
		}

		if err := e.resolveLinkedAccount(ctx, record); err != nil {
			logger.WarnCtx(ctx, "Failed to resolve linked account",
				zap.Error(err),
				zap.String("assetID", record.AssetID.Hex()))
			hold(record.BlockNumber)
			continue
		}

		pendings = append(pendings, &pending{record: record})
	}

	if err := e.verify(ctx, pendings); err != nil {
		return nil, err
	}

	for _, p := range pendings {
		if p.err != nil {
			logger.WarnCtx(ctx, "Ownership check failed, holding cursor",
				zap.Error(p.err),
				zap.String("assetID", p.record.AssetID.Hex()),
				zap.Uint64("blockNumber", p.record.BlockNumber))
			hold(p.record.BlockNumber)
		}
	}

	// Every event at or above a failed block is retried by the next pass
	newCursor := head
	if holdBlock <= head {
		newCursor = max(cursor, holdBlock-1)
	}

	var records []domain.ValidatedPlacementRecord
	var owned []domain.ValidatedPlacementRecord
	for _, p := range pendings {
		if p.err != nil || p.record.BlockNumber > newCursor {
			continue
		}
		validated := domain.ValidatedPlacementRecord{
			PlacementRecord: *p.record,
			PlacedByOwner:   p.owned,
		}
		records = append(records, validated)
		if p.owned {
			owned = append(owned, validated)
		}
	}

	if newCursor != cursor || len(records) > 0 {
		err := e.store.SaveSyncBatch(ctx, store.SaveSyncBatchInput{
			CursorName:  e.config.CursorName,
			BlockNumber: newCursor,
			Records:     records,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to save sync batch: %w", err)
		}
	}

	summary.BlockNumber = newCursor
	summary.Persisted = len(records)
	summary.Owned = len(owned)
	summary.Dispatched = e.dispatch(ctx, records, owned)

	logger.InfoCtx(ctx, "Sync pass completed",
		zap.Uint64("fromCursor", cursor),
		zap.Uint64("toCursor", newCursor),
		zap.Uint64("head", head),
		zap.Int("events", summary.Events),
		zap.Int("persisted", summary.Persisted),
		zap.Int("owned", summary.Owned),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped))

	return summary, nil
}

// resolveLinkedAccount attaches the foreign account linked to the publisher of a Tezos asset
func (e *engine) resolveLinkedAccount(ctx context.Context, record *domain.PlacementRecord) error {
	fa2, ok := record.Asset.(domain.TezosFA2Asset)
	if !ok {
		return nil
	}

	link, err := e.store.GetAccountLink(ctx, record.Publisher.Hex(), fa2.ChainID)
	if err != nil {
		return err
	}
	if link != nil {
		record.LinkedAccount = &link.ForeignAccount
	}

	return nil
}

// verify runs the ownership checks on a bounded pool, each result lands in its own pending
func (e *engine) verify(ctx context.Context, pendings []*pending) error {
	if len(pendings) == 0 {
		return nil
	}

	pool := pond.NewPool(e.config.VerifyConcurrency, pond.WithContext(ctx))
	for _, p := range pendings {
		pool.Submit(func() {
			checkCtx := ctx
			if e.config.VerifyTimeout > 0 {
				var cancel context.CancelFunc
				checkCtx, cancel = context.WithTimeout(ctx, e.config.VerifyTimeout)
				defer cancel()
			}

			p.owned, p.err = e.registry.VerifyOwnership(checkCtx, p.record)
			p.done = true
		})
	}
	pool.StopAndWait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("sync pass interrupted during ownership verification: %w", err)
	}
	for _, p := range pendings {
		if !p.done {
			p.err = errors.New("ownership check did not run")
		}
	}

	return nil
}

// dispatch notifies subscribers on a detached goroutine, the pass result never depends on it
func (e *engine) dispatch(ctx context.Context, records, owned []domain.ValidatedPlacementRecord) <-chan error {
	done := make(chan error, 1)

	publish := e.publisher != nil && len(records) > 0
	if len(owned) == 0 && !publish {
		close(done)
		return done
	}

	dispatchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.config.DispatchTimeout)
	go func() {
		defer close(done)
		defer cancel()

		var errs []error
		if len(owned) > 0 {
			result, err := e.dispatcher.Dispatch(dispatchCtx, owned)
			if err != nil {
				errs = append(errs, err)
			}
			if result != nil {
				logger.InfoCtx(dispatchCtx, "Webhook dispatch finished",
					zap.String("eventID", result.EventID),
					zap.Int("endpoints", result.Endpoints),
					zap.Int("delivered", result.Delivered))
			}
		}

		if publish {
			if err := e.publisher.PublishPlacements(dispatchCtx, records); err != nil {
				logger.ErrorCtx(dispatchCtx, fmt.Errorf("failed to publish placements: %w", err))
				errs = append(errs, err)
			}
		}

		done <- errors.Join(errs...)
	}()

	return done
}
