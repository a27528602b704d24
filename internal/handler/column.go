package handler

import (
	"log/slog"
	"net/http"

	"taskboard/internal/httputil"
	"taskboard/internal/service"
)

// ColumnHandler serves column CRUD. Update and Delete sit behind the
// column ownership guard; the same handlers also back the nested
// /users/{userId}/columns/{columnId} routes.
type ColumnHandler struct {
	columns *service.ColumnService
	logger  *slog.Logger
}

func NewColumnHandler(columns *service.ColumnService, logger *slog.Logger) *ColumnHandler {
	return &ColumnHandler{columns: columns, logger: logger}
}

// Create adds a column owned by the caller
// POST /columns
func (h *ColumnHandler) Create(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req service.CreateColumnRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	column, err := h.columns.Create(r.Context(), principalID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, column)
}

// List returns the caller's columns
// GET /columns
func (h *ColumnHandler) List(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	columns, err := h.columns.ListByUser(r.Context(), principalID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, columns)
}

// Get returns one column
// GET /columns/{columnId}
func (h *ColumnHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "columnId")
	if !ok {
		return
	}

	column, err := h.columns.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, column)
}

// ListCards returns the cards of one column
// GET /columns/{columnId}/cards
func (h *ColumnHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "columnId")
	if !ok {
		return
	}

	cards, err := h.columns.ListCards(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cards)
}

// Update modifies a column (guarded)
// PATCH /columns/{columnId}
func (h *ColumnHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "columnId")
	if !ok {
		return
	}

	var req service.UpdateColumnRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	column, err := h.columns.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, column)
}

// Delete removes a column and its cards (guarded)
// DELETE /columns/{columnId}
func (h *ColumnHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "columnId")
	if !ok {
		return
	}

	if err := h.columns.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
