// Package access implements the board's password gates and the per-session
// reveal state machine. The checks are pure, total functions: a mismatch is
// an ordinary false, never an error, and repeated failures carry no side
// effects (no counters, no lockout).
//
// Comparisons are plain string equality on plaintext values. That is the
// contract of this board: a low-assurance courtesy gate, not a security
// boundary. Anyone who can read the storage medium can read the passwords.
package access

import "github.com/Tpepper2001/noteboard/internal/domain"

// CheckBoardPassword decides a posting attempt on a shared-password board.
func CheckBoardPassword(submitted, configured string) bool {
	return submitted == configured
}

// CheckPostPassword decides a reveal attempt against a post's own password.
// Posts without a stored password (shared-board posts) never unlock this way.
func CheckPostPassword(submitted string, p domain.Post) bool {
	return p.Password != "" && submitted == p.Password
}
