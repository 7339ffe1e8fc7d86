package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/formrunner/formrunner/internal/domain"
	"github.com/formrunner/formrunner/internal/runlog"
)

func TestListRunsHandler(t *testing.T) {
	store := &mockStore{
		results: []*domain.RunResult{
			{ID: "a", Timestamp: time.Now(), URL: "https://x/1", Status: domain.RunSuccess},
			{ID: "b", Timestamp: time.Now(), URL: "https://x/2", Status: domain.RunError, Error: "no submit control found"},
		},
	}

	server := NewServer(store, t.TempDir(), ":8080")
	handler := server.listRunsHandler()

	req := httptest.NewRequest("GET", "/api/runs", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", w.Code)
	}

	var runs []RunResponse
	json.NewDecoder(w.Body).Decode(&runs)

	if len(runs) != 2 {
		t.Errorf("Run count = %d, want 2", len(runs))
	}
	if runs[1].Error == "" {
		t.Error("failed run should carry its error")
	}
}

func TestListRunsHandler_BadLimit(t *testing.T) {
	server := NewServer(&mockStore{}, t.TempDir(), ":8080")
	handler := server.listRunsHandler()

	req := httptest.NewRequest("GET", "/api/runs?limit=banana", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
}

func TestStatusHandler(t *testing.T) {
	store := &mockStore{
		results: []*domain.RunResult{
			{ID: "a", Status: domain.RunSuccess},
			{ID: "b", Status: domain.RunSuccess},
			{ID: "c", Status: domain.RunError},
		},
	}

	server := NewServer(store, t.TempDir(), ":8080")
	handler := server.statusHandler()

	req := httptest.NewRequest("GET", "/api/status", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var status StatusResponse
	json.NewDecoder(w.Body).Decode(&status)

	if status.Success != 2 {
		t.Errorf("Success = %d, want 2", status.Success)
	}
	if status.Failed != 1 {
		t.Errorf("Failed = %d, want 1", status.Failed)
	}
	if status.Total != 3 {
		t.Errorf("Total = %d, want 3", status.Total)
	}
}

func TestGetRunHandler_NotFound(t *testing.T) {
	server := NewServer(&mockStore{}, t.TempDir(), ":8080")
	handler := server.getRunHandler()

	req := httptest.NewRequest("GET", "/api/runs/nope", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", w.Code)
	}
}

func TestWatchRuns_BroadcastsNewRuns(t *testing.T) {
	store := &mockStore{
		results: []*domain.RunResult{
			{ID: "old", URL: "https://x/1", Status: domain.RunSuccess},
		},
	}
	server := NewServer(store, t.TempDir(), ":8080")
	go server.sseHub.Run()

	// First poll seeds history without announcing it
	seen := make(map[string]struct{})
	server.broadcastNewRuns(seen, false)
	if len(seen) != 1 {
		t.Fatalf("seeded = %d, want 1", len(seen))
	}

	client := server.sseHub.Subscribe()
	defer server.sseHub.Unsubscribe(client)

	got := make(chan Event, 1)
	go func() { got <- <-client }()
	// The receiver must be parked on the channel before the broadcast
	time.Sleep(50 * time.Millisecond)

	store.results = append(store.results, &domain.RunResult{
		ID: "new", URL: "https://x/2", Status: domain.RunError, Error: "no submit control found",
	})
	server.broadcastNewRuns(seen, true)

	select {
	case ev := <-got:
		if ev.Type != "run_completed" {
			t.Errorf("event type = %q, want run_completed", ev.Type)
		}
		resp, ok := ev.Data.(RunResponse)
		if !ok {
			t.Fatalf("event data = %T, want RunResponse", ev.Data)
		}
		if resp.ID != "new" {
			t.Errorf("event run = %q, want new", resp.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event broadcast for the new run")
	}

	if len(seen) != 2 {
		t.Errorf("seen = %d, want 2", len(seen))
	}
}

type mockStore struct {
	results []*domain.RunResult
}

func (m *mockStore) ListResults(opts runlog.ListOptions) ([]*domain.RunResult, error) {
	return m.results, nil
}

func (m *mockStore) GetResult(id string) (*domain.RunResult, error) {
	for _, r := range m.results {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStore) CountByStatus() (map[domain.RunStatus]int, error) {
	counts := make(map[domain.RunStatus]int)
	for _, r := range m.results {
		counts[r.Status]++
	}
	return counts, nil
}
