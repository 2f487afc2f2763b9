// Package server lets clients play games against the engine over a
// websocket. Every connection holds its own game and engine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quoridor/config"
)

const GracefulShutdownTimeout = 5 * time.Second

type Server struct {
	cfg     *config.Config
	version string
}

func NewServer(cfg *config.Config, version string) *Server {
	return &Server{cfg: cfg, version: version}
}

// Handler routes /ws to the websocket endpoint and /health to a status
// check.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.WebSocket)
	mux.HandleFunc("/health", s.Health)
	return mux
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(HealthResponse{Status: "ok", Version: s.version}); err != nil {
		log.Error().Err(err).Msg("health-write-failed")
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server-listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
