// Package metrics exposes the board's prometheus collectors. Counters only:
// the interesting rates (creation, pruning, denied attempts) are all
// monotonic events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noteboard_posts_created_total",
		Help: "Posts accepted onto the board.",
	})
	PostsPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noteboard_posts_pruned_total",
		Help: "Posts removed after their TTL elapsed.",
	})
	PruneCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noteboard_prune_cycles_total",
		Help: "Janitor prune cycles run.",
	})
	PostDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noteboard_post_denied_total",
		Help: "Posting attempts rejected by the board password.",
	})
	UnlockAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "noteboard_unlock_attempts_total",
		Help: "Per-post reveal attempts by outcome.",
	}, []string{"result"})
	SnapshotSaveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noteboard_snapshot_save_failures_total",
		Help: "Best-effort snapshot writes that failed.",
	})
)
