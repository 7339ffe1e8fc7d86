package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			if m.selectedRow < len(m.visible())-1 {
				m.selectedRow++
				if m.selectedRow >= m.scroll+m.pageSize() {
					m.scroll = m.selectedRow - m.pageSize() + 1
				}
			}
		case "k", "up":
			if m.selectedRow > 0 {
				m.selectedRow--
				if m.selectedRow < m.scroll {
					m.scroll = m.selectedRow
				}
			}
		case "f":
			m.filter = (m.filter + 1) % 3
			m.selectedRow = 0
			m.scroll = 0
		case "enter":
			if m.selected() != nil {
				m.showDetail = !m.showDetail
			}
		case "esc":
			m.showDetail = false
		case "r":
			return m, m.refreshCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		return m, tea.Batch(m.refreshCmd(), tickCmd())

	case RefreshMsg:
		if msg.Err != nil {
			m.loadErr = msg.Err
			return m, nil
		}
		m.loadErr = nil
		m.runs = msg.Runs
		if m.selectedRow >= len(m.visible()) {
			m.selectedRow = 0
			m.scroll = 0
		}
	}

	return m, nil
}

func (m Model) refreshCmd() tea.Cmd {
	if m.refresh == nil {
		return nil
	}
	refresh := m.refresh
	return func() tea.Msg {
		runs, err := refresh()
		return RefreshMsg{Runs: runs, Err: err}
	}
}

func (m Model) pageSize() int {
	// Header, tab line, status bar and borders eat into the height
	size := m.height - 7
	if size < 5 {
		size = 5
	}
	return size
}
