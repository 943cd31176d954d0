package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GarethNobleLFG/brainflip/internal/api/shared"
	"github.com/GarethNobleLFG/brainflip/internal/generation"
	"github.com/GarethNobleLFG/brainflip/internal/service"
)

// CardHandler handles card-related HTTP requests within a deck.
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService service.CardService, log *slog.Logger) *CardHandler {
	if cardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardService cannot be nil for CardHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CardHandler{
		cardService: cardService,
		logger:      log.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /api/decks/{deckID}/cards requests. Cards come
// back in insertion order.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	deckID, ok := h.deckIDFromURL(w, r)
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), deckID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	response := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, cardToResponse(card))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateCard handles POST /api/decks/{deckID}/cards requests.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	deckID, ok := h.deckIDFromURL(w, r)
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	card, err := h.cardService.AddCard(r.Context(), deckID, req.Front, req.Back)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}

// UpdateCard handles PUT /api/decks/{deckID}/cards/{cardID} requests.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	deckID, ok := h.deckIDFromURL(w, r)
	if !ok {
		return
	}
	cardID, ok := h.cardIDFromURL(w, r)
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	card, err := h.cardService.EditCard(r.Context(), deckID, cardID, req.Front, req.Back)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// DeleteCard handles DELETE /api/decks/{deckID}/cards/{cardID} requests.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	deckID, ok := h.deckIDFromURL(w, r)
	if !ok {
		return
	}
	cardID, ok := h.cardIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), deckID, cardID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportCards handles POST /api/decks/{deckID}/cards/import requests.
// Each pair is imported independently; the response reports per-index
// outcomes and the call succeeds as long as the deck exists.
func (h *CardHandler) ImportCards(w http.ResponseWriter, r *http.Request) {
	deckID, ok := h.deckIDFromURL(w, r)
	if !ok {
		return
	}

	var req ImportCardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if len(req.Cards) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "At least one card is required")
		return
	}

	pairs := make([]generation.QAPair, 0, len(req.Cards))
	for _, card := range req.Cards {
		pairs = append(pairs, generation.QAPair{Question: card.Question, Answer: card.Answer})
	}

	results, err := h.cardService.ImportBatch(r.Context(), deckID, pairs)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	response := ImportCardsResponse{Results: make([]ImportItemResult, 0, len(results))}
	for _, res := range results {
		item := ImportItemResult{Index: res.Index}
		if res.Err != nil {
			response.Failed++
			item.Error = GetSafeErrorMessage(res.Err)
		} else {
			response.Imported++
			card := cardToResponse(res.Card)
			item.Card = &card
		}
		response.Results = append(response.Results, item)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

func (h *CardHandler) deckIDFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	deckID, err := uuid.Parse(chi.URLParam(r, "deckID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID")
		return uuid.Nil, false
	}
	return deckID, true
}

func (h *CardHandler) cardIDFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	cardID, err := uuid.Parse(chi.URLParam(r, "cardID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return uuid.Nil, false
	}
	return cardID, true
}

func (h *CardHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
