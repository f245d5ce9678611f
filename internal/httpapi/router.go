// Package httpapi implements the Query Service: a read-only chi-based
// HTTP API in front of a network.Server.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/transitnet/network-monitor/internal/logging"
	"github.com/transitnet/network-monitor/network"
)

// Server holds the dependencies of the Query Service's HTTP handlers.
type Server struct {
	top    *network.Server
	logger *slog.Logger
}

// NewServer builds a Server backed by top, logging through logger.
func NewServer(top *network.Server, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{top: top, logger: logger}
}

// Router builds the chi router for the Query Service, per §4.5.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/routes/fastest", s.handleFastest)
	r.Get("/routes/quiet", s.handleQuiet)
	r.Get("/stations/{id}/passengers", s.handleStationPassengers)
	r.Get("/stations/{id}/routes", s.handleStationRoutes)

	return r
}

type requestIDKey struct{}

// requestID assigns a request-scoped UUID, echoed via X-Request-Id,
// matching the correlation pattern used across the retrieved services.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := logging.WithLogger(r.Context(), s.logger.With(slog.String("request_id", id)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.LogRequest(logging.FromContext(r.Context()), w.Header().Get("X-Request-Id"), r.Method, r.URL.Path, rec.status, 0)
	})
}
