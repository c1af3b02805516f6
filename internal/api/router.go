package api

import (
	"net/http"
	"time"

	// Blank import so swaggo finds the generated API definitions.
	_ "shamba-ai/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter wires all routes behind the standard middleware stack.
func NewRouter(queryHandler *QueryHandler, conversationHandler *ConversationHandler, analyticsHandler *AnalyticsHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness probe for container orchestration; the richer health report
	// lives under /api/v1/health.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Conversation CRUD and reporting are quick; give them a timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Get("/health", queryHandler.HandleHealth)

			r.Post("/conversations", conversationHandler.HandleCreate)
			r.Get("/conversations", conversationHandler.HandleList)
			r.Get("/conversations/{conversationID}", conversationHandler.HandleGet)
			r.Patch("/conversations/{conversationID}", conversationHandler.HandleUpdate)
			r.Delete("/conversations/{conversationID}", conversationHandler.HandleDelete)

			r.Get("/analytics/insights", analyticsHandler.HandleInsights)
			r.Get("/analytics/users/{userID}", analyticsHandler.HandleUserReport)
			r.Post("/feedback", analyticsHandler.HandleFeedback)
		})

		// Query and ingestion block on embedding and generation calls, which
		// can run long; give them a generous timeout instead.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(3 * time.Minute))

			r.Post("/query", queryHandler.HandleQuery)
			r.Post("/documents", queryHandler.HandleIngest)
			r.Post("/documents/files", queryHandler.HandleIngestFiles)
		})
	})

	return r
}
