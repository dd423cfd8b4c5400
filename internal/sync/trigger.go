package sync

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-placement-indexer/internal/adapter"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
)

// ErrRateLimited is returned when a pass is requested inside the minimum interval or while one is running
var ErrRateLimited = errors.New("sync rate limited")

// Trigger is the rate limited entry point of the sync engine
//
//go:generate mockgen -source=trigger.go -destination=../mocks/sync_trigger.go -package=mocks -mock_names=Trigger=MockSyncTrigger
type Trigger interface {
	// Trigger runs one pass, or fails with ErrRateLimited without touching the cursor
	Trigger(ctx context.Context) (*Summary, error)
}

type trigger struct {
	engine  Engine
	limiter *rate.Limiter
	clock   adapter.Clock
	running atomic.Bool
}

// NewTrigger creates a trigger that allows one pass per minInterval. Rejected calls are never queued.
func NewTrigger(engine Engine, minInterval time.Duration, clock adapter.Clock) Trigger {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}

	return &trigger{
		engine:  engine,
		limiter: rate.NewLimiter(limit, 1),
		clock:   clock,
	}
}

func (t *trigger) Trigger(ctx context.Context) (*Summary, error) {
	if !t.running.CompareAndSwap(false, true) {
		logger.WarnCtx(ctx, "Sync pass already running")
		return nil, ErrRateLimited
	}
	defer t.running.Store(false)

	if !t.limiter.AllowN(t.clock.Now(), 1) {
		logger.WarnCtx(ctx, "Sync pass requested inside the minimum interval",
			zap.Float64("tokens", t.limiter.TokensAt(t.clock.Now())))
		return nil, ErrRateLimited
	}

	return t.engine.Run(ctx)
}
