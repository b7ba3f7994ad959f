package httpserver

import (
	"log/slog"
	"net/http"

	"examgen/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const (
	healthStatus   = "Server is running!"
	msgNotFound    = "Not found"
	corsMaxAgeSecs = 300
)

type RouterDeps struct {
	Logger           *slog.Logger
	CORSOrigins      []string
	ExamHandler      http.HandlerFunc
	AnswerKeyHandler http.HandlerFunc
}

// NewRouter builds the chi router with the shared middleware stack.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
		MaxAge:         corsMaxAgeSecs,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": healthStatus})
	})

	r.Route("/api/exams", func(r chi.Router) {
		r.Post("/generate", deps.ExamHandler)
		r.Post("/answer-key", deps.AnswerKeyHandler)
	})

	// Deprecated aliases kept for older clients.
	r.Post("/generate-exam", deps.ExamHandler)
	r.Post("/generate-answer-key", deps.AnswerKeyHandler)

	notFound := notFoundHandler(deps.Logger)
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

func notFoundHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("route not found",
			slog.String("method", r.Method),
			slog.String("path", r.URL.RequestURI()),
		)
		WriteJSONError(w, http.StatusNotFound, msgNotFound)
	}
}
