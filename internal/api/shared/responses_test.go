package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	RespondWithJSON(rr, req, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "world", got["hello"])
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rr := httptest.NewRecorder()

	RespondWithError(rr, req, http.StatusNotFound, "Deck not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var got ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "Deck not found", got.Error)
	assert.Equal(t, GetTraceID(req.Context()), got.TraceID)
}

func TestRespondWithErrorAndLogHidesDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(context.Background())
	rr := httptest.NewRecorder()

	internal := errors.New("dial tcp: connection refused to postgres://user:secret@db/flash")
	RespondWithErrorAndLog(rr, req, http.StatusInternalServerError, "An unexpected error occurred", internal)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	body := rr.Body.String()
	assert.NotContains(t, body, "secret")
	assert.NotContains(t, body, "postgres://")
	assert.Contains(t, body, "An unexpected error occurred")
}
