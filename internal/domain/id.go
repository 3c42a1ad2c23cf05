// Package domain id.go contains functions to generate, parse, and validate post IDs
package domain

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// suffixLen is the hex-encoded length of the random ID suffix.
const suffixLen = 8

// PostID is the canonical identifier for a post. It is the creation
// timestamp in epoch milliseconds joined to a random 32-bit suffix
// ("1700000000000-9f2c4e01"), so two posts created within the same
// millisecond still receive distinct IDs.
type PostID string

// NewPostID generates a PostID for a post created at now.
func NewPostID(now time.Time) (PostID, error) {
	var b [suffixLen / 2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	dst := make([]byte, suffixLen)
	hex.Encode(dst, b[:]) // hex.Encode always produces lowercase
	return PostID(strconv.FormatInt(now.UnixMilli(), 10) + "-" + string(dst)), nil
}

// ParseID validates s and returns it as a PostID. It enforces:
// - a positive base-10 millisecond timestamp
// - a single '-' separator
// - exactly 8 lowercase hex suffix characters
// Returns ErrInvalidID on failure.
func ParseID(s string) (PostID, error) {
	if !isValidID(s) {
		return "", ErrInvalidID
	}
	return PostID(s), nil
}

// String returns the string form of the PostID.
func (id PostID) String() string { return string(id) }

// Valid reports whether the ID satisfies the same rules as ParseID.
func (id PostID) Valid() bool { return isValidID(string(id)) }

// isValidID performs validation without allocating errors.
func isValidID(s string) bool {
	dash := strings.IndexByte(s, '-')
	if dash <= 0 || len(s)-dash-1 != suffixLen {
		return false
	}
	ms, err := strconv.ParseInt(s[:dash], 10, 64)
	if err != nil || ms <= 0 {
		return false
	}
	for i := dash + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
