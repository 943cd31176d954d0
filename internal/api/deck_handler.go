// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GarethNobleLFG/brainflip/internal/api/shared"
	"github.com/GarethNobleLFG/brainflip/internal/platform/logger"
	"github.com/GarethNobleLFG/brainflip/internal/service"
)

// DeckHandler handles deck-related HTTP requests.
type DeckHandler struct {
	deckService service.DeckService
	logger      *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(deckService service.DeckService, log *slog.Logger) *DeckHandler {
	if deckService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckService cannot be nil for DeckHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &DeckHandler{
		deckService: deckService,
		logger:      log.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /api/decks requests.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.deckService.ListDecks(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	response := make([]DeckResponse, 0, len(decks))
	for _, deck := range decks {
		response = append(response, deckToResponse(deck))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateDeck handles POST /api/decks requests.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req CreateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Deck title is required")
		return
	}

	deck, err := h.deckService.CreateDeck(r.Context(), req.Title)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, deckToResponse(deck))
}

// GetDeck handles GET /api/decks/{deckID} requests.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID, ok := h.deckIDFromURL(w, r)
	if !ok {
		return
	}

	deck, err := h.deckService.GetDeck(r.Context(), deckID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// RenameDeck handles PUT /api/decks/{deckID} requests.
func (h *DeckHandler) RenameDeck(w http.ResponseWriter, r *http.Request) {
	deckID, ok := h.deckIDFromURL(w, r)
	if !ok {
		return
	}

	var req RenameDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Deck title is required")
		return
	}

	deck, err := h.deckService.RenameDeck(r.Context(), deckID, req.Title)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// DeleteDeck handles DELETE /api/decks/{deckID} requests.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID, ok := h.deckIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), deckID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite handles PUT /api/decks/{deckID}/favorite requests.
// The response carries the persisted deck; clients reconcile their
// optimistic state against it.
func (h *DeckHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, ok := h.deckIDFromURL(w, r)
	if !ok {
		return
	}

	deck, err := h.deckService.ToggleFavorite(r.Context(), deckID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	log.Debug("favorite toggled via API",
		slog.String("deck_id", deckID.String()),
		slog.Bool("is_favorite", deck.IsFavorite))
	shared.RespondWithJSON(w, r, http.StatusOK, DeckEnvelope{Deck: deckToResponse(deck)})
}

// ShareDeck handles POST /api/decks/{deckID}/share requests.
func (h *DeckHandler) ShareDeck(w http.ResponseWriter, r *http.Request) {
	deckID, ok := h.deckIDFromURL(w, r)
	if !ok {
		return
	}

	var req ShareDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "A valid recipient email is required")
		return
	}

	deck, token, err := h.deckService.ShareDeck(r.Context(), deckID, req.RecipientEmail)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ShareDeckResponse{
		Deck:       deckToResponse(deck),
		ShareToken: token,
	})
}

// deckIDFromURL parses the {deckID} URL parameter, responding with 400 on
// a malformed ID.
func (h *DeckHandler) deckIDFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	deckID, err := uuid.Parse(chi.URLParam(r, "deckID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID")
		return uuid.Nil, false
	}
	return deckID, true
}

func (h *DeckHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
