// Package health serves liveness and readiness probes on a side port.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const checkTimeout = 5 * time.Second

// CheckFunc probes one dependency. It returns whether the dependency is
// healthy and a short human-readable detail.
type CheckFunc func(ctx context.Context) (bool, string)

type checkResult struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

type healthReport struct {
	Status    string                 `json:"status"`
	Checks    map[string]checkResult `json:"checks"`
	Version   string                 `json:"version,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// Server exposes /health, /ready and /live.
type Server struct {
	port    int
	version string

	mu     sync.RWMutex
	checks map[string]CheckFunc

	server *http.Server
}

// NewServer creates a probe server on the given port.
func NewServer(port int, version string) *Server {
	return &Server{
		port:    port,
		version: version,
		checks:  make(map[string]CheckFunc),
	}
}

// RegisterCheck adds a named dependency probe.
func (s *Server) RegisterCheck(name string, check CheckFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[name] = check
}

// Start begins serving in the background.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.HandleFunc("GET /live", s.handleLive)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		// Probes are best-effort; a bind failure must not take the
		// service down.
		_ = s.server.ListenAndServe()
	}()

	return nil
}

// Stop drains the probe server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) snapshotChecks() map[string]CheckFunc {
	s.mu.RLock()
	defer s.mu.RUnlock()
	checks := make(map[string]CheckFunc, len(s.checks))
	for name, check := range s.checks {
		checks[name] = check
	}
	return checks
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	report := healthReport{
		Status:    "ok",
		Checks:    make(map[string]checkResult),
		Version:   s.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	for name, check := range s.snapshotChecks() {
		healthy, msg := check(ctx)
		report.Checks[name] = checkResult{Healthy: healthy, Message: msg}
		if !healthy {
			report.Status = "degraded"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if report.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(report)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	for _, check := range s.snapshotChecks() {
		if healthy, _ := check(ctx); !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, "not ready")
			return
		}
	}
	fmt.Fprint(w, "ready")
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "alive")
}
