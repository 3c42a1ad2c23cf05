// Package janitor implements the periodic prune tick that keeps expired
// posts from lingering. The cadence is a liveness concern only: the board's
// read paths re-check expiry themselves, so a delayed or skipped cycle never
// makes an expired post visible.
package janitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Tpepper2001/noteboard/internal/metrics"
)

// Board abstracts the single store operation the janitor drives.
type Board interface {
	// PruneExpired removes posts whose expiry is <= now and returns the
	// number removed.
	PruneExpired(ctx context.Context, now time.Time) int
}

// Config holds tunables for the Janitor.
type Config struct {
	Interval time.Duration // how often a cycle begins (default 1s)
	Logger   *slog.Logger  // optional logger (defaults to slog.Default())
}

// Janitor encapsulates the background prune loop.
type Janitor struct {
	board Board
	cfg   Config

	ticker *time.Ticker
	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once
}

// New constructs but does not start a Janitor.
func New(board Board, cfg Config) *Janitor {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Janitor{
		board:  board,
		cfg:    cfg,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start launches the janitor loop in a new goroutine.
func (j *Janitor) Start(ctx context.Context) {
	if j.ticker != nil {
		return
	} // already started
	j.ticker = time.NewTicker(j.cfg.Interval)
	go j.loop(ctx)
}

// Stop signals the loop to exit and waits for completion.
func (j *Janitor) Stop() {
	j.once.Do(func() { close(j.stopCh) })
	<-j.doneCh
}

func (j *Janitor) loop(ctx context.Context) {
	log := j.cfg.Logger.With("domain", "janitor")
	defer func() {
		if j.ticker != nil {
			j.ticker.Stop()
		}
		close(j.doneCh)
	}()
	for {
		select {
		case <-ctx.Done():
			log.Info("janitor stop", "reason", "context_cancel")
			return
		case <-j.stopCh:
			log.Info("janitor stop", "reason", "stop_signal")
			return
		case <-j.ticker.C:
			j.runCycle(ctx)
		}
	}
}

// runCycle performs one prune pass.
func (j *Janitor) runCycle(ctx context.Context) {
	removed := j.board.PruneExpired(ctx, time.Now().UTC())
	metrics.PruneCycles.Inc()
	if removed > 0 {
		j.cfg.Logger.Info("prune", "domain", "janitor", "removed", removed)
	}
}
