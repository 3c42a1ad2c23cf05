package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tpepper2001/noteboard/internal/domain"
)

type unlockRequest struct {
	Password string `json:"password"`
}

type unlockResponse struct {
	Allowed   bool   `json:"allowed"`
	Text      string `json:"text,omitempty"`
	Remaining string `json:"remaining,omitempty"`
}

// handleUnlock runs a reveal attempt against one post. A wrong password is a
// denial, not a server error; absent or expired posts are 404.
func (h *Handler) handleUnlock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.mapBoardError(ctx, w, err)
		return
	}
	if h.MaxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBody)
	}
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(ctx, w, http.StatusBadRequest, "malformed request body")
		return
	}

	now := h.Clock.Now()
	post, allowed, err := h.Board.Unlock(id, req.Password, now)
	if err != nil {
		h.mapBoardError(ctx, w, err)
		return
	}
	if !allowed {
		writeJSON(w, http.StatusUnauthorized, unlockResponse{Allowed: false})
		return
	}
	writeJSON(w, http.StatusOK, unlockResponse{
		Allowed:   true,
		Text:      post.Text,
		Remaining: post.Remaining(now.UnixMilli()),
	})
}
