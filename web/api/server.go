package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/formrunner/formrunner/internal/domain"
	"github.com/formrunner/formrunner/internal/runlog"
)

// Store interface for run history operations
type Store interface {
	ListResults(opts runlog.ListOptions) ([]*domain.RunResult, error)
	GetResult(id string) (*domain.RunResult, error)
	CountByStatus() (map[domain.RunStatus]int, error)
}

// Server is the HTTP API server
type Server struct {
	store          Store
	screenshotsDir string
	addr           string
	mux            *http.ServeMux
	sseHub         *SSEHub
}

// NewServer creates a new API server. screenshotsDir is served read-only
// under /screenshots/ so the UI can show run captures.
func NewServer(store Store, screenshotsDir, addr string) *Server {
	s := &Server{
		store:          store,
		screenshotsDir: screenshotsDir,
		addr:           addr,
		mux:            http.NewServeMux(),
		sseHub:         NewSSEHub(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// API routes
	s.mux.HandleFunc("/api/status", s.statusHandler())
	s.mux.HandleFunc("/api/runs", s.listRunsHandler())
	s.mux.HandleFunc("/api/runs/", s.getRunHandler())
	s.mux.HandleFunc("/api/events", s.sseHandler())
	s.mux.HandleFunc("/ws", s.wsHandler())

	// Run screenshots
	s.mux.Handle("/screenshots/", http.StripPrefix("/screenshots/",
		http.FileServer(http.Dir(s.screenshotsDir))))
}

// runPollInterval is how often the store is checked for freshly
// recorded runs to push to event stream clients
const runPollInterval = 2 * time.Second

// Start starts the HTTP server
func (s *Server) Start() error {
	go s.sseHub.Run()
	go s.watchRuns(runPollInterval)
	return http.ListenAndServe(s.addr, s.mux)
}

// watchRuns polls the store and broadcasts every run recorded since the
// previous poll. The first poll only seeds the seen set, so a restart
// never replays history to clients.
func (s *Server) watchRuns(interval time.Duration) {
	seen := make(map[string]struct{})
	s.broadcastNewRuns(seen, false)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		s.broadcastNewRuns(seen, true)
	}
}

func (s *Server) broadcastNewRuns(seen map[string]struct{}, announce bool) {
	results, err := s.store.ListResults(runlog.ListOptions{})
	if err != nil {
		return
	}
	for _, r := range results {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		if announce {
			s.Broadcast(Event{Type: "run_completed", Data: resultToResponse(r)})
		}
	}
}

// Handler exposes the route table for tests
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Broadcast sends an event to all connected clients
func (s *Server) Broadcast(event Event) {
	s.sseHub.Broadcast(event)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
