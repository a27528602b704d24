package handler

import (
	"log/slog"
	"net/http"

	"taskboard/internal/httputil"
	"taskboard/internal/service"
)

// CardHandler serves card CRUD; update and delete sit behind the card
// ownership guard on both the flat and the column-nested routes.
type CardHandler struct {
	cards  *service.CardService
	logger *slog.Logger
}

func NewCardHandler(cards *service.CardService, logger *slog.Logger) *CardHandler {
	return &CardHandler{cards: cards, logger: logger}
}

// Create adds a card to a column
// POST /cards
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCardRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card, err := h.cards.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, card)
}

// List returns every card on the caller's board
// GET /cards
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	cards, err := h.cards.ListByUser(r.Context(), principalID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cards)
}

// ListComments returns a card's comments
// GET /cards/{cardId}/comments
func (h *CardHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "cardId")
	if !ok {
		return
	}

	comments, err := h.cards.ListComments(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comments)
}

// Update modifies a card (guarded)
// PATCH /cards/{cardId}, PATCH /columns/{columnId}/cards/{cardId}
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "cardId")
	if !ok {
		return
	}

	var req service.UpdateCardRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card, err := h.cards.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, card)
}

// Delete removes a card (guarded)
// DELETE /cards/{cardId}, DELETE /columns/{columnId}/cards/{cardId}
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "cardId")
	if !ok {
		return
	}

	if err := h.cards.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
