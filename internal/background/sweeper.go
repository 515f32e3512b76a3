package background

import (
	"context"
	"log/slog"
	"time"
)

// Sweepable is any in-memory store that can drop expired entries.
type Sweepable interface {
	Sweep(now time.Time) int
}

// Sweeper periodically removes expired records from the in-memory stores
// (login attempt counters, local sessions, CSRF tokens). It runs on its own
// timer, fully decoupled from request handling.
type Sweeper struct {
	targets  map[string]Sweepable
	logger   *slog.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewSweeper creates a sweeper over the named targets.
func NewSweeper(targets map[string]Sweepable, logger *slog.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		targets:  targets,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep. It blocks until Stop is called or the
// context is cancelled, so callers run it in a goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce(time.Now())
		case <-s.stopCh:
			s.logger.Info("sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("sweeper context cancelled")
			return
		}
	}
}

// RunOnce performs a single sweep pass over every target. Exposed so tests
// can trigger a sweep without waiting on the real timer.
func (s *Sweeper) RunOnce(now time.Time) {
	for name, target := range s.targets {
		removed := target.Sweep(now)
		if removed > 0 {
			s.logger.Info("swept expired records",
				slog.String("store", name),
				slog.Int("removed", removed))
		}
	}
}

// Stop signals the sweeper to stop.
func (s *Sweeper) Stop() {
	close(s.stopCh)
}
