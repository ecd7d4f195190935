package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/larriantoniy/tg_intake_bot/internal/observability"
)

// Server — служебный HTTP-эндпоинт: health-check и метрики.
type Server struct {
	log *slog.Logger
	srv *http.Server
}

func New(addr string, log *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", observability.MetricsHandler())

	return &Server{
		log: log,
		srv: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) Start() {
	s.log.Info("ops server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("ops server failed", "error", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
