package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/formrunner/formrunner/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("255")).
		Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	successStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	failedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	selectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("238")).
		Foreground(lipgloss.Color("255"))

	dimmedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	statusBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("255"))
)

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	success, failed := 0, 0
	for _, r := range m.runs {
		if r.Failed() {
			failed++
		} else {
			success++
		}
	}

	header := fmt.Sprintf(" formrunner │ Runs: %d │ Success: %d │ Failed: %d │ Filter: %s ",
		len(m.runs), success, failed, m.filterName())
	b.WriteString(headerStyle.Width(m.width).Render(header))
	b.WriteString("\n")

	if m.showDetail && m.selected() != nil {
		b.WriteString(sectionStyle.Width(m.width - 2).Render(m.renderDetail(m.selected())))
	} else {
		b.WriteString(sectionStyle.Width(m.width - 2).Render(m.renderRuns()))
	}
	b.WriteString("\n")

	bar := " j/k: move │ enter: detail │ f: filter │ r: refresh │ q: quit "
	if m.loadErr != nil {
		bar = failedStyle.Render(" load error: "+m.loadErr.Error()) + " "
	}
	b.WriteString(statusBarStyle.Width(m.width).Render(bar))

	return b.String()
}

func (m Model) filterName() string {
	switch m.filter {
	case FilterFailed:
		return "failed"
	case FilterSuccess:
		return "success"
	default:
		return "all"
	}
}

func (m Model) renderRuns() string {
	rows := m.visible()
	if len(rows) == 0 {
		return dimmedStyle.Render("No runs recorded")
	}

	var b strings.Builder
	end := m.scroll + m.pageSize()
	if end > len(rows) {
		end = len(rows)
	}

	for i := m.scroll; i < end; i++ {
		r := rows[i]
		line := fmt.Sprintf("%-20s %-8s %-40s %s",
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Status,
			truncate(r.URL, 40),
			r.Duration.Round(time.Millisecond))

		switch {
		case i == m.selectedRow:
			line = selectedStyle.Render(line)
		case r.Failed():
			line = failedStyle.Render(line)
		default:
			line = successStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderDetail(r *domain.RunResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Run:        %s\n", r.ID))
	b.WriteString(fmt.Sprintf("Time:       %s\n", r.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("URL:        %s\n", r.URL))
	b.WriteString(fmt.Sprintf("Status:     %s\n", r.Status))
	b.WriteString(fmt.Sprintf("Duration:   %s\n", r.Duration.Round(time.Millisecond)))
	if r.Screenshot != "" {
		b.WriteString(fmt.Sprintf("Screenshot: %s\n", r.Screenshot))
	}
	if r.Error != "" {
		b.WriteString("Error:      " + failedStyle.Render(r.Error) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
