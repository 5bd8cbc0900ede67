package runner

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// DefaultInterval is the refresh tick used when none is configured.
const DefaultInterval = time.Second

// Poller is anything driven by a refresh tick, typically *marquee.Engine.
type Poller interface {
	Poll(ctx context.Context, now time.Time)
}

// Runner calls Poll on a fixed tick until its context is cancelled.
type Runner struct {
	// Interval between polls. Defaults to DefaultInterval.
	Interval time.Duration

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Now samples the clock. Defaults to time.Now.
	Now func() time.Time
}

// NewRunner creates a Runner polling every interval.
func NewRunner(interval time.Duration) *Runner {
	return &Runner{
		Interval: interval,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:      time.Now,
	}
}

// Run polls immediately and then on every tick.
// It blocks until ctx is done and returns ctx.Err().
func (r *Runner) Run(ctx context.Context, p Poller) error {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Debug("Poll loop started", "interval", interval)
	p.Poll(ctx, now())

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Poll loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			p.Poll(ctx, now())
		}
	}
}
