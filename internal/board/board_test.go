package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Tpepper2001/noteboard/internal/domain"
	"github.com/Tpepper2001/noteboard/internal/store"
)

// fixedClock implements Clock returning a fixed instant.
type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

// fakeSnapshots implements SnapshotStore for tests.
type fakeSnapshots struct {
	saved   [][]domain.Post
	saveErr error

	loadPosts []domain.Post
	loadErr   error
}

func (f *fakeSnapshots) Save(_ context.Context, posts []domain.Post) error {
	cp := make([]domain.Post, len(posts))
	copy(cp, posts)
	f.saved = append(f.saved, cp)
	return f.saveErr
}

func (f *fakeSnapshots) Load(_ context.Context) ([]domain.Post, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.loadPosts, nil
}

func testBoard(mode Mode, snaps SnapshotStore, now time.Time) *Board {
	return New(snaps, fixedClock{now: now}, Config{
		Mode:         mode,
		MinTTL:       time.Minute,
		MaxTTL:       24 * time.Hour,
		MaxTextBytes: 4096,
	})
}

func TestCreatePrependsNewestFirst(t *testing.T) {
	fs := &fakeSnapshots{}
	now := time.UnixMilli(1700000000000)
	b := testBoard(ModeShared, fs, now)
	ctx := context.Background()

	first, err := b.Create(ctx, "first", "", 5*time.Minute)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	second, err := b.Create(ctx, "second", "", 5*time.Minute)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	posts := b.List(now)
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != second.ID || posts[1].ID != first.ID {
		t.Fatal("posts must be ordered newest first")
	}
	if want := now.UnixMilli() + 5*60_000; first.Expiry != want {
		t.Fatalf("expiry = %d, want %d", first.Expiry, want)
	}
	if len(fs.saved) != 2 {
		t.Fatalf("every creation must persist; got %d saves", len(fs.saved))
	}
	if len(fs.saved[1]) != 2 || fs.saved[1][0].ID != second.ID {
		t.Fatal("persisted snapshot must hold the full newest-first sequence")
	}
}

func TestCreateRejectsEmptyTextStoreUnchanged(t *testing.T) {
	fs := &fakeSnapshots{}
	b := testBoard(ModeShared, fs, time.Now())

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := b.Create(context.Background(), text, "", 5*time.Minute); !errors.Is(err, domain.ErrEmptyText) {
			t.Fatalf("text %q: got %v, want ErrEmptyText", text, err)
		}
	}
	if b.Len() != 0 {
		t.Fatal("rejected creations must leave the store unchanged")
	}
	if len(fs.saved) != 0 {
		t.Fatal("rejected creations must not persist")
	}
}

func TestCreateRejectsOversizeText(t *testing.T) {
	fs := &fakeSnapshots{}
	b := New(fs, fixedClock{now: time.Now()}, Config{Mode: ModeShared, MinTTL: time.Minute, MaxTTL: time.Hour, MaxTextBytes: 4})
	if _, err := b.Create(context.Background(), "hello", "", 5*time.Minute); !errors.Is(err, ErrTextTooLarge) {
		t.Fatalf("got %v, want ErrTextTooLarge", err)
	}
}

func TestCreateValidatesTTL(t *testing.T) {
	b := testBoard(ModeShared, &fakeSnapshots{}, time.Now())
	for _, ttl := range []time.Duration{0, -time.Minute, 30 * time.Second, 25 * time.Hour} {
		if _, err := b.Create(context.Background(), "hi", "", ttl); !errors.Is(err, domain.ErrTTLInvalid) {
			t.Fatalf("ttl %v: got %v, want ErrTTLInvalid", ttl, err)
		}
	}
}

func TestCreateSecureModeRequiresPassword(t *testing.T) {
	b := testBoard(ModeSecure, &fakeSnapshots{}, time.Now())
	ctx := context.Background()

	if _, err := b.Create(ctx, "hi", "", 5*time.Minute); !errors.Is(err, domain.ErrPasswordRequired) {
		t.Fatalf("got %v, want ErrPasswordRequired", err)
	}
	if _, err := b.Create(ctx, "hi", "   ", 5*time.Minute); !errors.Is(err, domain.ErrPasswordRequired) {
		t.Fatalf("blank password: got %v, want ErrPasswordRequired", err)
	}
	p, err := b.Create(ctx, "hi", "abc", 5*time.Minute)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.Password != "abc" {
		t.Fatalf("password not stored on secure post: %q", p.Password)
	}
}

func TestCreateSharedModeNeverStoresPassword(t *testing.T) {
	b := testBoard(ModeShared, &fakeSnapshots{}, time.Now())
	p, err := b.Create(context.Background(), "hi", "1234", 5*time.Minute)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.Password != "" {
		t.Fatal("shared-board posts must not carry a password")
	}
}

func TestCreateSurvivesPersistFailure(t *testing.T) {
	fs := &fakeSnapshots{saveErr: errors.New("disk gone")}
	b := testBoard(ModeShared, fs, time.Now())
	if _, err := b.Create(context.Background(), "hi", "", 5*time.Minute); err != nil {
		t.Fatalf("creation must succeed despite a persistence failure, got %v", err)
	}
	if b.Len() != 1 {
		t.Fatal("in-memory state must remain authoritative")
	}
}

func TestPruneExpired(t *testing.T) {
	fs := &fakeSnapshots{}
	start := time.UnixMilli(1700000000000)
	b := testBoard(ModeShared, fs, start)
	ctx := context.Background()

	// TTLs 1m, 5m, 1m: after 2 minutes only the middle post survives.
	if _, err := b.Create(ctx, "short a", "", time.Minute); err != nil {
		t.Fatalf("Create: %v", err)
	}
	long, err := b.Create(ctx, "long", "", 5*time.Minute)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := b.Create(ctx, "short b", "", time.Minute); err != nil {
		t.Fatalf("Create: %v", err)
	}
	savesBefore := len(fs.saved)

	later := start.Add(2 * time.Minute)
	if removed := b.PruneExpired(ctx, later); removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	posts := b.List(later)
	if len(posts) != 1 || posts[0].ID != long.ID {
		t.Fatalf("survivor mismatch: %+v", posts)
	}
	if len(fs.saved) != savesBefore+1 {
		t.Fatal("a prune that removed posts must persist once")
	}

	// Idempotent: same instant again removes nothing and writes nothing.
	if removed := b.PruneExpired(ctx, later); removed != 0 {
		t.Fatalf("second prune removed %d, want 0", removed)
	}
	if len(fs.saved) != savesBefore+1 {
		t.Fatal("a no-op prune must not persist")
	}
}

func TestPrunePreservesSurvivorOrder(t *testing.T) {
	start := time.UnixMilli(1700000000000)
	b := testBoard(ModeShared, &fakeSnapshots{}, start)
	ctx := context.Background()

	ids := make([]domain.PostID, 0, 4)
	for i, ttl := range []time.Duration{10 * time.Minute, time.Minute, 10 * time.Minute, time.Minute} {
		p, err := b.Create(ctx, "post", "", ttl)
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		ids = append(ids, p.ID)
	}

	later := start.Add(5 * time.Minute)
	b.PruneExpired(ctx, later)
	posts := b.List(later)
	if len(posts) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(posts))
	}
	// Creation order was ids[0..3], list is newest first: survivors are
	// ids[2] then ids[0].
	if posts[0].ID != ids[2] || posts[1].ID != ids[0] {
		t.Fatal("pruning must not reorder survivors")
	}
}

func TestListDefensivelyFiltersExpired(t *testing.T) {
	start := time.UnixMilli(1700000000000)
	b := testBoard(ModeShared, &fakeSnapshots{}, start)
	if _, err := b.Create(context.Background(), "hello", "", time.Minute); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// No prune has run, but a delayed janitor must not leak expired posts.
	if got := b.List(start.Add(61 * time.Second)); len(got) != 0 {
		t.Fatalf("expired post leaked through List: %+v", got)
	}
	if b.Len() != 1 {
		t.Fatal("List must not mutate the store")
	}
}

func TestHydrate(t *testing.T) {
	saved := []domain.Post{
		{ID: "1700000060000-0b0b0b0b", Text: "newest", PostedAt: 1700000060000, Expiry: 1700009000000},
		{ID: "1700000000000-0a0a0a0a", Text: "older", PostedAt: 1700000000000, Expiry: 1700009000000},
	}
	b := testBoard(ModeShared, &fakeSnapshots{loadPosts: saved}, time.UnixMilli(1700000070000))
	b.Hydrate(context.Background())
	posts := b.List(time.UnixMilli(1700000070000))
	if len(posts) != 2 || posts[0].ID != saved[0].ID {
		t.Fatalf("hydrated posts mismatch: %+v", posts)
	}
}

func TestHydrateDegradesToEmpty(t *testing.T) {
	cases := map[string]error{
		"absent":    store.ErrNotFound,
		"malformed": errors.New("decode snapshot: unexpected end of JSON input"),
	}
	for name, loadErr := range cases {
		t.Run(name, func(t *testing.T) {
			b := testBoard(ModeShared, &fakeSnapshots{loadErr: loadErr}, time.Now())
			b.Hydrate(context.Background())
			if b.Len() != 0 {
				t.Fatal("hydrate failure must start the board empty")
			}
		})
	}
}

func TestUnlock(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	b := testBoard(ModeSecure, &fakeSnapshots{}, now)
	p, err := b.Create(context.Background(), "secret", "abc", 5*time.Minute)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, allowed, err := b.Unlock(p.ID, "abc", now)
	if err != nil || !allowed {
		t.Fatalf("correct password: allowed=%v err=%v", allowed, err)
	}
	if got.Text != "secret" {
		t.Fatalf("unlock returned text %q", got.Text)
	}

	if _, allowed, err := b.Unlock(p.ID, "xyz", now); err != nil || allowed {
		t.Fatalf("wrong password must deny without error: allowed=%v err=%v", allowed, err)
	}

	if _, _, err := b.Unlock("1700000000001-ffffffff", "abc", now); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("absent post: got %v, want ErrPostNotFound", err)
	}

	// An expired post is gone for unlock purposes too.
	if _, _, err := b.Unlock(p.ID, "abc", now.Add(6*time.Minute)); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expired post: got %v, want ErrPostNotFound", err)
	}
}

// The end-to-end lifecycle from the board's perspective: post "hello" with a
// one-minute TTL at t=0, see "30s" left at t=30s, and nothing at t=61s.
func TestPostLifecycle(t *testing.T) {
	start := time.UnixMilli(1700000000000)
	fs := &fakeSnapshots{}
	b := testBoard(ModeShared, fs, start)
	ctx := context.Background()

	post, err := b.Create(ctx, "hello", "", time.Minute)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	at30 := start.Add(30 * time.Second)
	posts := b.List(at30)
	if len(posts) != 1 {
		t.Fatalf("post missing at +30s")
	}
	if got := posts[0].Remaining(at30.UnixMilli()); got != "30s" {
		t.Fatalf("remaining at +30s = %q, want 30s", got)
	}

	at61 := start.Add(61 * time.Second)
	if got := b.List(at61); len(got) != 0 {
		t.Fatalf("post still listed at +61s: %+v", got)
	}
	if removed := b.PruneExpired(ctx, at61); removed != 1 {
		t.Fatalf("prune at +61s removed %d, want 1", removed)
	}
	if _, err := b.Get(post.ID, at61); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expired post still retrievable: %v", err)
	}
}
