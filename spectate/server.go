package spectate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 3 * time.Second

// Server exposes the hub over HTTP: health, latest snapshot and the live websocket feed
type Server struct {
	addr     string
	hub      *Hub
	r        *chi.Mux
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewServer builds the router for hub
func NewServer(addr string, hub *Hub, log zerolog.Logger) *Server {
	s := &Server{
		addr: addr,
		hub:  hub,
		r:    chi.NewRouter(),
		upgrader: websocket.Upgrader{
			// Read-only feed, any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)
		r.Get("/healthz", s.handleHealth)
		r.Get("/snapshot", s.handleSnapshot)
	})
	// Upgraded connections outlive any request timeout
	s.r.Get("/ws", s.handleWS)

	return s
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.r
}

// Run listens until ctx is done, then shuts down and disconnects spectators
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("spectate: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("spectator server listening")
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		s.hub.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate: serve: %w", err)
	case <-ctx.Done():
	}

	// Hijacked websocket connections are not tracked by Shutdown
	s.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("spectate: shutdown: %w", err)
	}
	s.log.Info().Msg("spectator server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	data := s.hub.Latest()
	if data == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"no snapshot yet"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		s.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	s.hub.serve(conn)
}

// jsonContentType sets a default Content-Type for JSON endpoints
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
