// Package adminserver exposes a read-only HTTP view of a running kitchen:
// GET /report returns the latest Report, GET /healthz is a liveness probe.
// It is not part of the delivery path (spec.md's Non-goals bar networked
// delivery) and never mutates kitchen state; it only calls Kitchen.Report,
// the same method the package's own tests use.
package adminserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"dish-dispatcher/internal/kitchen"
)

// Server wraps a chi router around a Kitchen's reporting endpoint.
type Server struct {
	kitchen *kitchen.Kitchen
	logger  *zap.Logger
	handler http.Handler
}

// New builds a Server for k. The returned Server implements http.Handler and
// can be passed directly to http.Server or httptest.
func New(k *kitchen.Kitchen, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{kitchen: k, logger: logger.Named("adminserver")}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	r.Get("/healthz", s.handleHealthz)
	r.Get("/report", s.handleReport)
	s.handler = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report := s.kitchen.Report()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.logger.Error("failed to encode report", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}
