package handler

import (
	"log/slog"
	"net/http"

	"taskboard/internal/httputil"
	"taskboard/internal/service"
)

// CommentHandler serves comment routes; only deletion is ownership
// guarded, and it is the column owner who may delete, not necessarily
// the author.
type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

// Create adds a comment authored by the caller
// POST /comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req service.CreateCommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.comments.Create(r.Context(), principalID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, comment)
}

// List returns the caller's own comments
// GET /comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	comments, err := h.comments.ListByUser(r.Context(), principalID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comments)
}

// Get returns one comment
// GET /comments/{commentId}
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "commentId")
	if !ok {
		return
	}

	comment, err := h.comments.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comment)
}

// Delete removes a comment (guarded)
// DELETE /comments/{commentId}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "commentId")
	if !ok {
		return
	}

	if err := h.comments.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
