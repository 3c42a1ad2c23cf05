package access

import "github.com/Tpepper2001/noteboard/internal/domain"

// RevealState is the per-post unlock state within one render session.
type RevealState int

const (
	// Locked is the initial state of every post in a fresh session.
	Locked RevealState = iota
	// Unlocked is terminal for the session: there is no way back to Locked
	// short of discarding the session.
	Unlocked
)

// RevealSession tracks which posts a viewer has unlocked. It is transient
// view-adjacent state: never persisted, never consulted by the post store,
// and discarded whenever the post list is reloaded. Not safe for concurrent
// use; a session belongs to a single viewer.
type RevealSession struct {
	unlocked map[domain.PostID]struct{}
}

// NewRevealSession returns a session with every post Locked.
func NewRevealSession() *RevealSession {
	return &RevealSession{unlocked: make(map[domain.PostID]struct{})}
}

// State returns the current reveal state for a post.
func (s *RevealSession) State(id domain.PostID) RevealState {
	if _, ok := s.unlocked[id]; ok {
		return Unlocked
	}
	return Locked
}

// Attempt runs the Locked -> Unlocked transition for p using submitted.
// A correct password unlocks the post for the rest of the session; a wrong
// one leaves it Locked and returns false as the denied signal. Attempts on
// an already-unlocked post succeed without re-checking.
func (s *RevealSession) Attempt(p domain.Post, submitted string) bool {
	if s.State(p.ID) == Unlocked {
		return true
	}
	if !CheckPostPassword(submitted, p) {
		return false
	}
	s.unlocked[p.ID] = struct{}{}
	return true
}
