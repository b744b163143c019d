// Package server provides the HTTP server for the Shadowbox game: the
// snapshot websocket, the MJPEG camera stream, and the settings and
// calibration APIs backing the in-game options screen.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/shadowbox/internal/match"
	"github.com/ayusman/shadowbox/internal/server/api"
	"github.com/ayusman/shadowbox/internal/store"
)

// Game is the engine surface the server needs: snapshots out, requests
// and the keyboard block fallback in.
type Game interface {
	Snapshot() match.Snapshot
	Subscribe() chan match.Snapshot
	Unsubscribe(chan match.Snapshot)
	Request(match.Request)
	SetKeyboardBlock(held bool)
	LatestFrame() []byte
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Game      Game
}

// Server represents the HTTP server for the Shadowbox application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Game != nil {
		s.mux.Handle("/api/state", NewStateHandler(s.config.Game))
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Game))
	}

	if s.config.Store != nil {
		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.Store, api.DefaultSettingsFlushDelay))

		calibrationHandler := api.NewCalibrationHandler(s.config.Store)
		s.mux.Handle("/api/calibration/samples", calibrationHandler)
		s.mux.Handle("/api/calibration/samples/", calibrationHandler)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
