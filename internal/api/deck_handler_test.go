package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GarethNobleLFG/brainflip/internal/domain"
	"github.com/GarethNobleLFG/brainflip/internal/service"
)

// mockDeckService is a function-field mock of service.DeckService.
type mockDeckService struct {
	createFn func(ctx context.Context, title string) (*domain.Deck, error)
	getFn    func(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error)
	listFn   func(ctx context.Context) ([]*domain.Deck, error)
	renameFn func(ctx context.Context, deckID uuid.UUID, title string) (*domain.Deck, error)
	deleteFn func(ctx context.Context, deckID uuid.UUID) error
	toggleFn func(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error)
	shareFn  func(ctx context.Context, deckID uuid.UUID, recipient string) (*domain.Deck, string, error)
}

func (m *mockDeckService) CreateDeck(ctx context.Context, title string) (*domain.Deck, error) {
	return m.createFn(ctx, title)
}

func (m *mockDeckService) GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	return m.getFn(ctx, deckID)
}

func (m *mockDeckService) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	return m.listFn(ctx)
}

func (m *mockDeckService) RenameDeck(ctx context.Context, deckID uuid.UUID, title string) (*domain.Deck, error) {
	return m.renameFn(ctx, deckID, title)
}

func (m *mockDeckService) DeleteDeck(ctx context.Context, deckID uuid.UUID) error {
	return m.deleteFn(ctx, deckID)
}

func (m *mockDeckService) ToggleFavorite(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	return m.toggleFn(ctx, deckID)
}

func (m *mockDeckService) ShareDeck(ctx context.Context, deckID uuid.UUID, recipient string) (*domain.Deck, string, error) {
	return m.shareFn(ctx, deckID, recipient)
}

// withDeckID injects a chi route context carrying the deckID URL param.
func withDeckID(req *http.Request, deckID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("deckID", deckID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func withDeckAndCardID(req *http.Request, deckID, cardID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("deckID", deckID)
	rctx.URLParams.Add("cardID", cardID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func testDeck(title string) *domain.Deck {
	now := time.Now().UTC()
	return &domain.Deck{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateDeckHandler(t *testing.T) {
	deck := testDeck("Biology")
	svc := &mockDeckService{
		createFn: func(ctx context.Context, title string) (*domain.Deck, error) {
			assert.Equal(t, "Biology", title)
			return deck, nil
		},
	}
	handler := NewDeckHandler(svc, nil)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"title":"Biology"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Title",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/decks", bytes.NewBufferString(tc.body))
			rr := httptest.NewRecorder()

			handler.CreateDeck(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusCreated {
				var got DeckResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
				assert.Equal(t, deck.ID.String(), got.ID)
				assert.Equal(t, "Biology", got.Title)
			}
		})
	}
}

func TestListDecksHandler(t *testing.T) {
	decks := []*domain.Deck{testDeck("one"), testDeck("two")}
	handler := NewDeckHandler(&mockDeckService{
		listFn: func(ctx context.Context) ([]*domain.Deck, error) {
			return decks, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/decks", nil)
	rr := httptest.NewRecorder()
	handler.ListDecks(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []DeckResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Title)
	assert.Equal(t, "two", got[1].Title)
}

func TestToggleFavoriteHandler(t *testing.T) {
	deck := testDeck("Starred")
	deck.IsFavorite = true

	tests := []struct {
		name           string
		deckID         string
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "Success",
			deckID:         deck.ID.String(),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Deck Not Found",
			deckID:         uuid.New().String(),
			serviceErr:     service.ErrDeckNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Malformed Deck ID",
			deckID:         "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewDeckHandler(&mockDeckService{
				toggleFn: func(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
					if tc.serviceErr != nil {
						return nil, tc.serviceErr
					}
					return deck, nil
				},
			}, nil)

			req := httptest.NewRequest(http.MethodPut, "/api/decks/"+tc.deckID+"/favorite", nil)
			req = withDeckID(req, tc.deckID)
			rr := httptest.NewRecorder()

			handler.ToggleFavorite(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				var got DeckEnvelope
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
				assert.True(t, got.Deck.IsFavorite)
				assert.Equal(t, deck.ID.String(), got.Deck.ID)
			}
		})
	}
}

func TestShareDeckHandler(t *testing.T) {
	deck := testDeck("Shared")
	deck.SharedWith = []string{"friend@example.com"}

	tests := []struct {
		name           string
		deckID         string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "Success",
			deckID:         deck.ID.String(),
			body:           `{"recipientEmail":"friend@example.com"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing Email",
			deckID:         deck.ID.String(),
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed Email",
			deckID:         deck.ID.String(),
			body:           `{"recipientEmail":"nope"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Deck Not Found",
			deckID:         uuid.New().String(),
			body:           `{"recipientEmail":"friend@example.com"}`,
			serviceErr:     service.ErrDeckNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewDeckHandler(&mockDeckService{
				shareFn: func(ctx context.Context, deckID uuid.UUID, recipient string) (*domain.Deck, string, error) {
					if tc.serviceErr != nil {
						return nil, "", tc.serviceErr
					}
					return deck, "signed-token", nil
				},
			}, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/decks/"+tc.deckID+"/share", bytes.NewBufferString(tc.body))
			req = withDeckID(req, tc.deckID)
			rr := httptest.NewRecorder()

			handler.ShareDeck(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				var got ShareDeckResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
				assert.Equal(t, "signed-token", got.ShareToken)
				assert.Equal(t, []string{"friend@example.com"}, got.Deck.SharedWith)
			}
		})
	}
}

func TestDeleteDeckHandler(t *testing.T) {
	deckID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		handler := NewDeckHandler(&mockDeckService{
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				assert.Equal(t, deckID, id)
				return nil
			},
		}, nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/decks/"+deckID.String(), nil)
		req = withDeckID(req, deckID.String())
		rr := httptest.NewRecorder()

		handler.DeleteDeck(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		handler := NewDeckHandler(&mockDeckService{
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				return service.ErrDeckNotFound
			},
		}, nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/decks/"+deckID.String(), nil)
		req = withDeckID(req, deckID.String())
		rr := httptest.NewRecorder()

		handler.DeleteDeck(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
