package board

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Tpepper2001/noteboard/internal/access"
	"github.com/Tpepper2001/noteboard/internal/domain"
	"github.com/Tpepper2001/noteboard/internal/metrics"
	"github.com/Tpepper2001/noteboard/internal/store"
)

// Mode selects the board's access-control granularity.
type Mode string

const (
	// ModeShared: one board-wide password gates posting; every post is
	// readable once on the board.
	ModeShared Mode = "shared"
	// ModeSecure: anyone may post, each post carries its own password
	// required to reveal its text.
	ModeSecure Mode = "secure"
)

// ErrTextTooLarge indicates the post text exceeds the configured maximum.
var ErrTextTooLarge = errors.New("post text too large")

// Config holds the board's tunables.
type Config struct {
	Mode         Mode
	MinTTL       time.Duration
	MaxTTL       time.Duration
	MaxTextBytes int          // 0 disables the size check
	Logger       *slog.Logger // optional (defaults to slog.Default())
}

// Board owns the ordered post sequence, newest first. All mutations are
// serialized through its mutex: the HTTP handlers and the janitor share one
// instance, and this lock is the single-writer boundary the lifecycle rules
// assume.
type Board struct {
	snaps SnapshotStore
	clock Clock
	cfg   Config
	log   *slog.Logger

	mu    sync.Mutex
	posts []domain.Post
}

// New constructs an empty Board. Call Hydrate to load persisted state.
func New(snaps SnapshotStore, clock Clock, cfg Config) *Board {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Board{
		snaps: snaps,
		clock: clock,
		cfg:   cfg,
		log:   cfg.Logger.With("domain", "board"),
	}
}

// Mode returns the board's configured access-control variant.
func (b *Board) Mode() Mode { return b.cfg.Mode }

// Hydrate loads the persisted snapshot. Durability corruption is non-fatal:
// an absent or malformed snapshot just starts the board empty.
func (b *Board) Hydrate(ctx context.Context) {
	posts, err := b.snaps.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return
		}
		b.log.Warn("hydrate", "action", "start_empty", "error", err)
		return
	}
	b.mu.Lock()
	b.posts = posts
	b.mu.Unlock()
	b.log.Info("hydrate", "posts", len(posts))
}

// Create validates and prepends a new post, then persists the full updated
// sequence. A persistence failure is logged and counted but does not undo
// the creation: the in-memory state stays authoritative.
func (b *Board) Create(ctx context.Context, text, password string, ttl time.Duration) (domain.Post, error) {
	if b.cfg.MaxTextBytes > 0 && len(text) > b.cfg.MaxTextBytes {
		return domain.Post{}, ErrTextTooLarge
	}
	if err := domain.ValidateTTL(ttl, b.cfg.MinTTL, b.cfg.MaxTTL); err != nil {
		return domain.Post{}, domain.ErrTTLInvalid
	}
	if b.cfg.Mode == ModeSecure {
		if strings.TrimSpace(password) == "" {
			return domain.Post{}, domain.ErrPasswordRequired
		}
	} else {
		// The board-level password is checked by the caller and never stored.
		password = ""
	}
	post, err := domain.NewPost(text, password, b.clock.Now(), ttl)
	if err != nil {
		return domain.Post{}, err
	}

	b.mu.Lock()
	b.posts = append([]domain.Post{post}, b.posts...)
	b.persistLocked(ctx)
	b.mu.Unlock()

	metrics.PostsCreated.Inc()
	return post, nil
}

// PruneExpired removes every post whose expiry has been reached at now,
// preserving the relative order of survivors. It persists only when the
// sequence actually changed, so repeated calls are idempotent and do not
// generate redundant writes.
func (b *Board) PruneExpired(ctx context.Context, now time.Time) int {
	nowMS := now.UnixMilli()

	b.mu.Lock()
	survivors := b.posts[:0]
	for _, p := range b.posts {
		if !p.Expired(nowMS) {
			survivors = append(survivors, p)
		}
	}
	removed := len(b.posts) - len(survivors)
	if removed > 0 {
		b.posts = survivors
		b.persistLocked(ctx)
	}
	b.mu.Unlock()

	if removed > 0 {
		metrics.PostsPruned.Add(float64(removed))
	}
	return removed
}

// List returns a copy of the live posts, newest first. Expired posts are
// filtered out here as well, independent of the janitor cadence, so a post
// is never visible past its TTL even if the periodic prune is delayed.
func (b *Board) List(now time.Time) []domain.Post {
	nowMS := now.UnixMilli()

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Post, 0, len(b.posts))
	for _, p := range b.posts {
		if !p.Expired(nowMS) {
			out = append(out, p)
		}
	}
	return out
}

// Get returns the live post with the given id, honoring expiry.
func (b *Board) Get(id domain.PostID, now time.Time) (domain.Post, error) {
	nowMS := now.UnixMilli()

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.posts {
		if p.ID == id {
			if p.Expired(nowMS) {
				return domain.Post{}, domain.ErrPostNotFound
			}
			return p, nil
		}
	}
	return domain.Post{}, domain.ErrPostNotFound
}

// Unlock runs a reveal attempt against a live post. The decision is a value:
// a wrong password returns allowed == false with a nil error. Only an absent
// or expired post is an error.
func (b *Board) Unlock(id domain.PostID, submitted string, now time.Time) (domain.Post, bool, error) {
	post, err := b.Get(id, now)
	if err != nil {
		return domain.Post{}, false, err
	}
	if !access.CheckPostPassword(submitted, post) {
		metrics.UnlockAttempts.WithLabelValues("denied").Inc()
		return domain.Post{}, false, nil
	}
	metrics.UnlockAttempts.WithLabelValues("allowed").Inc()
	return post, true, nil
}

// Len reports the current number of stored posts, expired or not.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.posts)
}

// persistLocked writes the full current sequence, best-effort. Callers must
// hold b.mu.
func (b *Board) persistLocked(ctx context.Context) {
	snapshot := make([]domain.Post, len(b.posts))
	copy(snapshot, b.posts)
	if err := b.snaps.Save(ctx, snapshot); err != nil {
		metrics.SnapshotSaveFailures.Inc()
		b.log.Warn("persist", "error", err)
	}
}
