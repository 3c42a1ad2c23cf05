package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Tpepper2001/noteboard/internal/access"
	"github.com/Tpepper2001/noteboard/internal/board"
	"github.com/Tpepper2001/noteboard/internal/domain"
	"github.com/Tpepper2001/noteboard/internal/metrics"
)

// postView is the client-facing projection of a post. On a secure board the
// text stays withheld until an unlock succeeds.
type postView struct {
	ID        string `json:"id"`
	Text      string `json:"text,omitempty"`
	PostedAt  int64  `json:"postedAt"`
	Expiry    int64  `json:"expiry"`
	Remaining string `json:"remaining"`
	Locked    bool   `json:"locked,omitempty"`
}

// view projects p for the configured mode at nowMS.
func (h *Handler) view(p domain.Post, nowMS int64) postView {
	v := postView{
		ID:        p.ID.String(),
		Text:      p.Text,
		PostedAt:  p.PostedAt,
		Expiry:    p.Expiry,
		Remaining: p.Remaining(nowMS),
	}
	if h.Mode == board.ModeSecure {
		v.Text = ""
		v.Locked = true
	}
	return v
}

type createPostRequest struct {
	Text       string `json:"text"`
	TTLMinutes int64  `json:"ttlMinutes"`
	Password   string `json:"password"`
}

// handleCreatePost accepts a submit-post intent. On a shared board the
// request password must match the board password before the store is
// touched; a mismatch leaves the store unchanged and reports the denial so
// the client can let the user retry with fields intact.
func (h *Handler) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.MaxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBody)
	}
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(ctx, w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		h.writeError(ctx, w, http.StatusBadRequest, "malformed request body")
		return
	}

	if h.Mode == board.ModeShared {
		if !access.CheckBoardPassword(req.Password, h.BoardPassword) {
			metrics.PostDenied.Inc()
			h.writeError(ctx, w, http.StatusUnauthorized, "incorrect password")
			return
		}
		req.Password = "" // board password is a gate, never post state
	}

	ttl := time.Duration(req.TTLMinutes) * time.Minute
	post, err := h.Board.Create(ctx, req.Text, req.Password, ttl)
	if err != nil {
		h.mapBoardError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.view(post, h.Clock.Now().UnixMilli()))
}

type listPostsResponse struct {
	Posts []postView `json:"posts"`
}

// handleListPosts returns the live posts, newest first, with their countdown
// labels computed at request time.
func (h *Handler) handleListPosts(w http.ResponseWriter, r *http.Request) {
	now := h.Clock.Now()
	nowMS := now.UnixMilli()
	posts := h.Board.List(now)
	resp := listPostsResponse{Posts: make([]postView, 0, len(posts))}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, h.view(p, nowMS))
	}
	writeJSON(w, http.StatusOK, resp)
}

type ttlOptionView struct {
	Label   string `json:"label"`
	Minutes int64  `json:"minutes"`
}

// handleTTLOptions exposes the configured lifetime menu so clients do not
// hardcode it.
func (h *Handler) handleTTLOptions(w http.ResponseWriter, r *http.Request) {
	out := make([]ttlOptionView, 0, len(h.TTLOptions))
	for _, opt := range h.TTLOptions {
		out = append(out, ttlOptionView{Label: opt.Label, Minutes: int64(opt.Duration / time.Minute)})
	}
	writeJSON(w, http.StatusOK, struct {
		Options []ttlOptionView `json:"options"`
	}{Options: out})
}
