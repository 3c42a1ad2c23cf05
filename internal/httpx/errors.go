package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Tpepper2001/noteboard/internal/board"
	"github.com/Tpepper2001/noteboard/internal/domain"
)

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body with given status code.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, struct {
		Error string `json:"error"`
	}{Error: msg})
	if cid, ok := GetCorrelationID(ctx); ok {
		slog.Debug("wrote error response", "cid", cid, "status", code, "msg", msg)
	}
}

// mapBoardError maps domain/board errors to HTTP responses. Password denials
// never reach this path; they are decisions, not errors.
func (h *Handler) mapBoardError(ctx context.Context, w http.ResponseWriter, err error) {
	cid, _ := GetCorrelationID(ctx)
	switch {
	case errors.Is(err, domain.ErrEmptyText):
		slog.Warn("board error", "cid", cid, "code", "empty_text")
		h.writeError(ctx, w, http.StatusBadRequest, "message text required")
	case errors.Is(err, domain.ErrPasswordRequired):
		slog.Warn("board error", "cid", cid, "code", "password_required")
		h.writeError(ctx, w, http.StatusBadRequest, "post password required")
	case errors.Is(err, domain.ErrTTLInvalid):
		slog.Warn("board error", "cid", cid, "code", "ttl_invalid")
		h.writeError(ctx, w, http.StatusBadRequest, "ttl invalid")
	case errors.Is(err, board.ErrTextTooLarge):
		slog.Warn("board error", "cid", cid, "code", "text_too_large")
		h.writeError(ctx, w, http.StatusRequestEntityTooLarge, "text too large")
	case errors.Is(err, domain.ErrInvalidID):
		slog.Warn("board error", "cid", cid, "code", "invalid_id")
		h.writeError(ctx, w, http.StatusBadRequest, "invalid id")
	case errors.Is(err, domain.ErrPostNotFound):
		slog.Info("board error", "cid", cid, "code", "not_found")
		h.writeError(ctx, w, http.StatusNotFound, "not found")
	default:
		// Internal / unexpected: do not echo raw error strings to clients.
		slog.Error("unhandled board error", "cid", cid, "err", err)
		h.writeError(ctx, w, http.StatusInternalServerError, "internal")
	}
}
