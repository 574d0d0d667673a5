package api

import (
	"net/http"
	"time"

	// Registers the generated API definitions with swag.
	_ "llamachat/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates the chi router with all the application's routes. When
// staticDir is not empty the page shell is served from it.
func NewRouter(chatHandler *ChatHandler, sessionHandler *SessionHandler, modelHandler *ModelHandler, staticDir string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- Chat ---
			r.Get("/chat", chatHandler.GetChat)
			r.Put("/chat/draft", chatHandler.UpdateDraft)
			r.Post("/chat/new", chatHandler.StartNewChat)

			// --- Sessions ---
			r.Post("/sessions", sessionHandler.SaveSession)
			r.Get("/sessions", sessionHandler.ListSessions)
			r.Delete("/sessions", sessionHandler.ClearSessions)
			r.Get("/sessions/{sessionID}", sessionHandler.GetSession)
			r.Post("/sessions/{sessionID}/load", sessionHandler.LoadSession)
			r.Delete("/sessions/{sessionID}", sessionHandler.DeleteSession)

			// --- Models ---
			r.Get("/models", modelHandler.HandleListModels)
		})

		// A submission waits for the completion, which has no upper bound.
		r.Group(func(r chi.Router) {
			r.Post("/chat/messages", chatHandler.SubmitMessage)
		})
	})

	if staticDir != "" {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Handle("/*", http.StripPrefix("/", fileServer))
	}

	return r
}
