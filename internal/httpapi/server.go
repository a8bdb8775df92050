package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/pgprobe/internal/domain"
)

// StatusSource provides read-only snapshots of the running probe. The run
// loop publishes copies; serving them here never touches loop state.
type StatusSource interface {
	Snapshot() domain.Snapshot
}

type Server struct {
	Logger *zap.Logger
	Status StatusSource
}

func NewServer(l *zap.Logger, st StatusSource) *Server {
	return &Server{Logger: l, Status: st}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/status", s.handleStatus)

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Status.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.Logger.Warn("status_encode_error", zap.Error(err))
	}
}
