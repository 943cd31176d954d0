package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GarethNobleLFG/brainflip/internal/generation"
	"github.com/GarethNobleLFG/brainflip/internal/ingestion"
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) ExtractText(ctx context.Context, document []byte) (string, error) {
	return s.text, s.err
}

type stubGenerator struct {
	pairs []generation.QAPair
	err   error
}

func (s *stubGenerator) GenerateQAPairs(ctx context.Context, text string, count int) ([]generation.QAPair, error) {
	return s.pairs, s.err
}

func newGenerateHandler(t *testing.T, extractor ingestion.DocumentExtractor, gen generation.Generator) *GenerateHandler {
	t.Helper()
	pipeline, err := ingestion.NewPipeline(extractor, gen, time.Second, nil)
	require.NoError(t, err)
	return NewGenerateHandler(pipeline, 1<<20, nil)
}

// multipartBody builds a multipart body with a pdf part and a
// numFlashcards field.
func multipartBody(t *testing.T, pdf []byte, numFlashcards string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if pdf != nil {
		part, err := writer.CreateFormFile("pdf", "notes.pdf")
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(pdf))
		require.NoError(t, err)
	}
	if numFlashcards != "" {
		require.NoError(t, writer.WriteField("numFlashcards", numFlashcards))
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestGenerateFlashcardsHandler(t *testing.T) {
	pairs := []generation.QAPair{
		{Question: "What is Go?", Answer: "A programming language"},
		{Question: "Who made it?", Answer: "Google"},
	}

	t.Run("Success", func(t *testing.T) {
		handler := newGenerateHandler(t,
			&stubExtractor{text: "Some extracted document text."},
			&stubGenerator{pairs: pairs})

		body, contentType := multipartBody(t, []byte("%PDF-fake"), "2")
		req := httptest.NewRequest(http.MethodPost, "/api/cards/generate", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.GenerateFlashcards(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got FlashcardsResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		require.Len(t, got.Flashcards, 2)
		assert.Equal(t, "What is Go?", got.Flashcards[0].Question)
		assert.Equal(t, "A programming language", got.Flashcards[0].Answer)
	})

	t.Run("Missing PDF Part", func(t *testing.T) {
		handler := newGenerateHandler(t,
			&stubExtractor{text: "text"},
			&stubGenerator{pairs: pairs})

		body, contentType := multipartBody(t, nil, "2")
		req := httptest.NewRequest(http.MethodPost, "/api/cards/generate", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.GenerateFlashcards(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Non-Integer Count", func(t *testing.T) {
		handler := newGenerateHandler(t,
			&stubExtractor{text: "text"},
			&stubGenerator{pairs: pairs})

		body, contentType := multipartBody(t, []byte("%PDF-fake"), "lots")
		req := httptest.NewRequest(http.MethodPost, "/api/cards/generate", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.GenerateFlashcards(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Count Out Of Range", func(t *testing.T) {
		handler := newGenerateHandler(t,
			&stubExtractor{text: "text"},
			&stubGenerator{pairs: pairs})

		body, contentType := multipartBody(t, []byte("%PDF-fake"), "0")
		req := httptest.NewRequest(http.MethodPost, "/api/cards/generate", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.GenerateFlashcards(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Unreadable Document", func(t *testing.T) {
		handler := newGenerateHandler(t,
			&stubExtractor{err: errors.New("corrupt xref table")},
			&stubGenerator{pairs: pairs})

		body, contentType := multipartBody(t, []byte("not a pdf"), "2")
		req := httptest.NewRequest(http.MethodPost, "/api/cards/generate", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.GenerateFlashcards(rr, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Generator Unavailable", func(t *testing.T) {
		handler := newGenerateHandler(t,
			&stubExtractor{text: "text"},
			&stubGenerator{err: errors.New("upstream quota exhausted")})

		body, contentType := multipartBody(t, []byte("%PDF-fake"), "2")
		req := httptest.NewRequest(http.MethodPost, "/api/cards/generate", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.GenerateFlashcards(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		var got map[string]string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Contains(t, got["error"], "retry")
	})

	t.Run("Not Multipart", func(t *testing.T) {
		handler := newGenerateHandler(t,
			&stubExtractor{text: "text"},
			&stubGenerator{pairs: pairs})

		req := httptest.NewRequest(http.MethodPost, "/api/cards/generate", bytes.NewBufferString(`{"pdf":"nope"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		handler.GenerateFlashcards(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
