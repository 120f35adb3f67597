package sweeper

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/metanet-market/marketd/internal/account"
	"github.com/metanet-market/marketd/internal/adapter"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
	"github.com/metanet-market/marketd/internal/token"
)

// ExpirySweeperConfig holds configuration for the expiry sweeper
type ExpirySweeperConfig struct {
	Creator  domain.PublicKeyID // Identity whose listings are swept
	Interval time.Duration      // Time to sleep between sweep cycles
}

// expirySweeper walks the configured creator's listings on an interval,
// marks the overdue ones expired and reclaims their outputs so the index
// stops advertising dead listings.
type expirySweeper struct {
	config   *ExpirySweeperConfig
	view     account.View
	clock    adapter.Clock
	running  atomic.Bool
	stopping atomic.Bool

	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewExpirySweeper creates a new expiry sweeper
func NewExpirySweeper(config *ExpirySweeperConfig, view account.View, clock adapter.Clock) Sweeper {
	return &expirySweeper{
		config:    config,
		view:      view,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *expirySweeper) Name() string {
	return "expiry-sweeper"
}

// Start begins the sweeper's main loop
func (s *expirySweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting expiry sweeper",
		zap.String("creator", string(s.config.Creator)),
		zap.Duration("interval", s.config.Interval),
	)

	for {
		s.sweepOnce(ctx)

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Expiry sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Expiry sweeper stop requested")
			return nil
		case <-s.clock.After(s.config.Interval):
		}
	}
}

// Stop gracefully stops the sweeper
func (s *expirySweeper) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	// Concurrent Stop calls race on the close; only the first one wins
	if s.stopping.CompareAndSwap(false, true) {
		close(s.stopChan)
	}

	select {
	case <-s.stoppedCh:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timeout waiting for sweeper to stop: %w", ctx.Err())
	}
}

// sweepOnce runs a single reclaim cycle. Per-token failures are logged and
// skipped so one stuck output never stalls the rest.
func (s *expirySweeper) sweepOnce(ctx context.Context) {
	snap, err := s.view.Snapshot(ctx, s.config.Creator)
	if err != nil {
		logger.WarnCtx(ctx, "expiry sweep snapshot failed", zap.Error(err))
		return
	}

	if len(snap.Expired) == 0 {
		logger.Debug("No expired listings to reclaim",
			zap.String("creator", string(s.config.Creator)),
		)
		return
	}

	reclaimed := 0
	for _, tok := range snap.Expired {
		if tok.State() != token.StateExpired {
			continue
		}
		if err := s.view.RemoveExpired(ctx, tok); err != nil {
			logger.WarnCtx(ctx, "failed to reclaim expired listing",
				zap.String("outpoint", tok.Outpoint().String()),
				zap.Error(err),
			)
			continue
		}
		reclaimed++
	}

	logger.InfoCtx(ctx, "Expiry sweep cycle complete",
		zap.String("creator", string(s.config.Creator)),
		zap.Int("expired", len(snap.Expired)),
		zap.Int("reclaimed", reclaimed),
	)
}
