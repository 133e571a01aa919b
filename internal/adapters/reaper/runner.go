// Package reaper periodically removes expired sessions from stores that do not expire them on their own.
package reaper

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// DefaultInterval is used when RunnerOptions.Interval is not positive.
const DefaultInterval = 10 * time.Minute

// Sweeper drops every entry that expired before now and reports how many it removed.
type Sweeper interface {
	Sweep(now time.Time) int
}

// Runner sweeps a store on a fixed interval.
type Runner struct {
	store    Sweeper
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Store    Sweeper // Required
	Interval time.Duration
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewRunner creates a new reaper runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Store == nil {
		return nil, errors.New("sweeper is required")
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Runner{
		store:    opts.Store,
		interval: opts.Interval,
		now:      opts.Now,
		logger:   opts.Logger.With("component", "session_reaper"),
	}, nil
}

// Run sweeps once per interval until ctx is cancelled. It always returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting session reaper", "interval", r.interval)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single pass and returns the number of sessions removed.
func (r *Runner) SweepOnce(ctx context.Context) int {
	n := r.store.Sweep(r.now())
	if n > 0 {
		r.logger.DebugContext(ctx, "expired sessions removed", "count", n)
	}
	return n
}
