package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cuemby/hutch/pkg/journal"
	"github.com/cuemby/hutch/pkg/log"
	"github.com/cuemby/hutch/pkg/metrics"
	"github.com/cuemby/hutch/pkg/reconciler"
	"github.com/rs/zerolog"
)

const defaultJournalLimit = 50

// Server is the front-door HTTP surface: health, status, state inspection,
// and the manual trigger. It never mutates DNS itself.
type Server struct {
	reconciler *reconciler.Reconciler
	journal    *journal.Journal
	mux        *http.ServeMux
	server     *http.Server
	logger     zerolog.Logger
}

// NewServer creates the front-door server. The journal may be nil when
// journaling is disabled.
func NewServer(rec *reconciler.Reconciler, j *journal.Journal) *Server {
	mux := http.NewServeMux()
	s := &Server{
		reconciler: rec,
		journal:    j,
		mux:        mux,
		logger:     log.WithComponent("api"),
	}

	// Register endpoints
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/ready", s.readyHandler)
	mux.HandleFunc("/status", s.statusHandler)
	mux.HandleFunc("/dns-state", s.dnsStateHandler)
	mux.HandleFunc("/journal", s.journalHandler)
	mux.HandleFunc("/trigger", s.triggerHandler)
	mux.Handle("/metrics", metrics.Handler())

	return s
}

// Start starts the HTTP server and blocks until it exits. Failing to bind
// the listener is the one unrecoverable error in the system.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Str("addr", addr).Msg("Front door listening")
	return s.server.ListenAndServe()
}

// Stop shuts the server down gracefully
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// GetHandler returns the HTTP handler for embedding in tests
func (s *Server) GetHandler() http.Handler {
	return s.mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// healthHandler is a pure liveness check: 200 if the process is alive
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// readyHandler reports readiness: the service is ready to mutate DNS only
// when the gateway client authenticated successfully
func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := s.reconciler.Status()
	if !status.GatewayReady {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "not ready",
			"message": "DNS gateway client not initialized",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// statusHandler exposes the reconciler's externally visible state
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, s.reconciler.Status())
}

// dnsStateHandler dumps the write cache as app → zone → IPs
func (s *Server) dnsStateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, s.reconciler.DNSState())
}

// journalHandler returns the most recent journal entries, newest first
func (s *Server) journalHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.journal == nil {
		http.Error(w, "Journal disabled", http.StatusNotFound)
		return
	}

	limit := defaultJournalLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := s.journal.Recent(limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read journal")
		http.Error(w, "Failed to read journal", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// triggerHandler attempts one manual iteration. It honors the same
// mutual-exclusion guard as the timer: a run already in progress rejects the
// trigger instead of queueing it.
func (s *Server) triggerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.reconciler.Running() {
		writeJSON(w, http.StatusConflict, map[string]string{
			"status":  "rejected",
			"message": "iteration already running",
		})
		return
	}

	// The guard inside TryRunOnce settles any race with a timer tick
	go s.reconciler.TryRunOnce(context.Background())

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "triggered"})
}
