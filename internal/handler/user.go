package handler

import (
	"log/slog"
	"net/http"

	"taskboard/internal/httputil"
	"taskboard/internal/service"
)

// UserHandler serves account reads and updates plus the nested
// user-scoped column routes.
type UserHandler struct {
	users   *service.UserService
	columns *service.ColumnService
	logger  *slog.Logger
}

func NewUserHandler(users *service.UserService, columns *service.ColumnService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, columns: columns, logger: logger}
}

// Get returns a user without its credential hash
// GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	// models.User excludes Hash from JSON; nothing to strip here.
	httputil.RespondJSON(w, http.StatusOK, user)
}

// Update modifies the caller's own account
// PATCH /users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req service.UpdateUserRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Update(r.Context(), principalID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, user)
}

// ListColumns returns the columns of the user named in the path
// GET /users/{userId}/columns
func (h *UserHandler) ListColumns(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	columns, err := h.columns.ListByUser(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, columns)
}

// GetColumn returns one column from the nested route
// GET /users/{userId}/columns/{columnId}
func (h *UserHandler) GetColumn(w http.ResponseWriter, r *http.Request) {
	columnID, ok := pathID(w, r, "columnId")
	if !ok {
		return
	}

	column, err := h.columns.Get(r.Context(), columnID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, column)
}
