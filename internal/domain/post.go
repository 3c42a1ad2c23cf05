// Package domain holds the core entities and pure rules of the board:
// posts, their identifiers, TTL handling, and expiry arithmetic. No I/O,
// logging, or transport concerns belong here.
package domain

import (
	"strings"
	"time"
)

// Post is a single ephemeral message on the board. Time fields are epoch
// milliseconds so that expiry arithmetic round-trips serialization exactly.
//
// Password is set only on secure boards, where it gates revealing Text.
// It is stored and compared as plaintext: the gate is a UI-level courtesy,
// not a security boundary, and anyone with access to the storage medium
// can read it.
type Post struct {
	ID       PostID `json:"id"`
	Text     string `json:"text"`
	Password string `json:"password,omitempty"`
	PostedAt int64  `json:"postedAt"`
	Expiry   int64  `json:"expiry"`
}

// NewPost builds a Post created at now that lives for ttl. Text is trimmed;
// an empty result yields ErrEmptyText. A non-positive ttl yields
// ErrTTLInvalid. The invariant Expiry == PostedAt + ttl in milliseconds
// holds exactly.
func NewPost(text, password string, now time.Time, ttl time.Duration) (Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Post{}, ErrEmptyText
	}
	if ttl <= 0 {
		return Post{}, ErrTTLInvalid
	}
	id, err := NewPostID(now)
	if err != nil {
		return Post{}, err
	}
	postedAt := now.UnixMilli()
	return Post{
		ID:       id,
		Text:     text,
		Password: password,
		PostedAt: postedAt,
		Expiry:   postedAt + ttl.Milliseconds(),
	}, nil
}

// Expired reports whether the post's TTL has elapsed at now (epoch ms).
func (p Post) Expired(now int64) bool { return IsExpired(p.Expiry, now) }

// Remaining returns the human countdown label for the post at now (epoch ms).
func (p Post) Remaining(now int64) string { return Remaining(p.Expiry, now) }

// Equal reports whether two posts are identical field-for-field. Handy in
// tests and snapshot round-trip checks.
func (p Post) Equal(other Post) bool {
	return p.ID == other.ID &&
		p.Text == other.Text &&
		p.Password == other.Password &&
		p.PostedAt == other.PostedAt &&
		p.Expiry == other.Expiry
}
