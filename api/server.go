package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// GuildInfo represents basic guild information
type GuildInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GuildLister reports the guilds the bot is connected to
type GuildLister interface {
	Guilds() []GuildInfo
}

// Response is the JSON body of the debug endpoints
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Server serves the liveness and debug endpoints
type Server struct {
	guilds GuildLister
	mux    *chi.Mux
	http   *http.Server
}

// New creates a server listening on addr. guilds may be nil until the bot is connected.
func New(addr string, guilds GuildLister) *Server {
	s := &Server{
		guilds: guilds,
		mux:    chi.NewRouter(),
	}
	s.routes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the router
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	alive := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Bot is alive!"))
	}
	r.Get("/", alive)
	r.Head("/", alive)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/debug/guilds", s.handleGuilds)
}

func (s *Server) handleGuilds(w http.ResponseWriter, _ *http.Request) {
	if s.guilds == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Error: "bot not connected"})
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: s.guilds.Guilds()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// Start serves in the background
func (s *Server) Start() {
	go func() {
		log.WithField("addr", s.http.Addr).Info("Keepalive server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Keepalive server stopped")
		}
	}()
}

// Shutdown stops the server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
