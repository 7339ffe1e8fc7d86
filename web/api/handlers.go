package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/formrunner/formrunner/internal/domain"
	"github.com/formrunner/formrunner/internal/runlog"
)

// RunResponse is the API response for a single run
type RunResponse struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"`
	URL        string `json:"url"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	Screenshot string `json:"screenshot,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// StatusResponse is the API response for overall run counts
type StatusResponse struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

func resultToResponse(r *domain.RunResult) RunResponse {
	return RunResponse{
		ID:         r.ID,
		Timestamp:  r.Timestamp.Format(time.RFC3339),
		URL:        r.URL,
		Status:     string(r.Status),
		Error:      r.Error,
		Screenshot: r.Screenshot,
		DurationMS: r.Duration.Milliseconds(),
	}
}

func (s *Server) statusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		counts, err := s.store.CountByStatus()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		status := StatusResponse{
			Success: counts[domain.RunSuccess],
			Failed:  counts[domain.RunError],
		}
		status.Total = status.Success + status.Failed

		writeJSON(w, status)
	}
}

func (s *Server) listRunsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		opts := runlog.ListOptions{
			URL: r.URL.Query().Get("url"),
		}
		if status := r.URL.Query().Get("status"); status != "" {
			opts.Status = domain.RunStatus(status)
		}
		if limit := r.URL.Query().Get("limit"); limit != "" {
			n, err := strconv.Atoi(limit)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			opts.Limit = n
		}

		results, err := s.store.ListResults(opts)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		responses := make([]RunResponse, len(results))
		for i, res := range results {
			responses[i] = resultToResponse(res)
		}

		writeJSON(w, responses)
	}
}

func (s *Server) getRunHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		id := strings.TrimPrefix(r.URL.Path, "/api/runs/")
		if id == "" {
			writeError(w, http.StatusBadRequest, "run ID required")
			return
		}

		result, err := s.store.GetResult(id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusNotFound, "run not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, resultToResponse(result))
	}
}
