package access

import (
	"testing"

	"github.com/Tpepper2001/noteboard/internal/domain"
)

func TestCheckBoardPassword(t *testing.T) {
	if CheckBoardPassword("wrong", "1234") {
		t.Fatal("wrong board password must be denied")
	}
	if !CheckBoardPassword("1234", "1234") {
		t.Fatal("correct board password must be allowed")
	}
}

func TestCheckPostPassword(t *testing.T) {
	p := domain.Post{ID: "1700000000000-0a0a0a0a", Text: "hi", Password: "abc"}
	if !CheckPostPassword("abc", p) {
		t.Fatal("correct post password must be allowed")
	}
	if CheckPostPassword("xyz", p) {
		t.Fatal("wrong post password must be denied")
	}
	// Posts without a stored password never unlock, even on an empty submit.
	open := domain.Post{ID: "1700000000001-0b0b0b0b", Text: "hi"}
	if CheckPostPassword("", open) {
		t.Fatal("password-less post must not unlock")
	}
}
