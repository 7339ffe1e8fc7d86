package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/formrunner/formrunner/internal/domain"
)

// FilterMode determines which runs are displayed
type FilterMode int

const (
	FilterAll FilterMode = iota
	FilterFailed
	FilterSuccess
)

// RefreshFunc reloads run history from the store
type RefreshFunc func() ([]*domain.RunResult, error)

// Model is the TUI application model
type Model struct {
	// Data
	runs    []*domain.RunResult
	refresh RefreshFunc
	loadErr error

	// UI state
	width       int
	height      int
	selectedRow int
	scroll      int
	filter      FilterMode
	showDetail  bool

	lastRefresh time.Time
}

// NewModel creates a new TUI model
func NewModel(runs []*domain.RunResult, refresh RefreshFunc) Model {
	return Model{
		runs:        runs,
		refresh:     refresh,
		lastRefresh: time.Now(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// TickMsg triggers a periodic refresh
type TickMsg time.Time

// RefreshMsg carries a reloaded run list
type RefreshMsg struct {
	Runs []*domain.RunResult
	Err  error
}

func tickCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// visible returns the runs matching the active filter
func (m Model) visible() []*domain.RunResult {
	if m.filter == FilterAll {
		return m.runs
	}
	want := domain.RunSuccess
	if m.filter == FilterFailed {
		want = domain.RunError
	}
	var out []*domain.RunResult
	for _, r := range m.runs {
		if r.Status == want {
			out = append(out, r)
		}
	}
	return out
}

// selected returns the run under the cursor, or nil
func (m Model) selected() *domain.RunResult {
	rows := m.visible()
	if m.selectedRow < 0 || m.selectedRow >= len(rows) {
		return nil
	}
	return rows[m.selectedRow]
}
