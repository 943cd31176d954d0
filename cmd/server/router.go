package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GarethNobleLFG/brainflip/internal/api"
	apiMiddleware "github.com/GarethNobleLFG/brainflip/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	generateHandler := api.NewGenerateHandler(
		app.pipeline,
		app.config.Ingestion.MaxUploadBytes,
		app.logger,
	)

	r.Route("/api", func(r chi.Router) {
		r.Post("/cards/generate", generateHandler.GenerateFlashcards)

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.ListDecks)
			r.Post("/", deckHandler.CreateDeck)

			r.Route("/{deckID}", func(r chi.Router) {
				r.Get("/", deckHandler.GetDeck)
				r.Put("/", deckHandler.RenameDeck)
				r.Delete("/", deckHandler.DeleteDeck)
				r.Put("/favorite", deckHandler.ToggleFavorite)
				r.Post("/share", deckHandler.ShareDeck)

				r.Route("/cards", func(r chi.Router) {
					r.Get("/", cardHandler.ListCards)
					r.Post("/", cardHandler.CreateCard)
					r.Post("/import", cardHandler.ImportCards)
					r.Put("/{cardID}", cardHandler.UpdateCard)
					r.Delete("/{cardID}", cardHandler.DeleteCard)
				})
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
