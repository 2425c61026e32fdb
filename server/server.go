package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/config"
	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/domain"
	ws "github.com/CuriouzK0d3r/cli-novel-writer-sub006/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server hosts the sync endpoints: the websocket upgrade plus health, stats
// and metrics. Start binds before serving so a port conflict is reported to
// the caller instead of killing the process; the editor stays usable with
// collaboration disabled.
type Server struct {
	httpServer *http.Server
	registry   domain.Registry
	handler    domain.Handler

	mu   sync.Mutex
	addr string
}

func New(cfg *config.Config, registry domain.Registry, handler domain.Handler) *Server {
	s := &Server{
		registry: registry,
		handler:  handler,
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	return s
}

// Start binds the listener and serves in the background. A bind failure is
// returned synchronously; serve errors other than a clean shutdown are
// logged, never fatal.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	go func() {
		slog.Info("sync server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("sync server stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound listen address, empty until Start succeeds.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("upgrade failed", "error", err)
		return
	}

	ws.NewConn(uuid.New().String(), conn, s.handler).Start()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	rooms, sessions := s.registry.Stats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"rooms": rooms, "sessions": sessions})
}
