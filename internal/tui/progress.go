// Package tui renders a live progress display for copy runs.
// It is a thin bubbletea model fed by pipeline events; the pipeline
// itself never depends on it.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressMsg reports cumulative bytes delivered to the destination.
type ProgressMsg struct {
	Bytes int64
	Round int
}

// DoneMsg ends the display once the pipeline has terminated.
type DoneMsg struct {
	Bytes  int64
	Rounds int
	Err    error
}

// Model is the bubbletea model for a single copy run.
type Model struct {
	bar    progress.Model
	source string
	total  int64 // source size in bytes, 0 when unknown
	bytes  int64
	rounds int
	done   bool
	err    error
}

// NewModel creates a progress model for a copy of total bytes from the
// named source. A zero total renders a spinner-less indeterminate line.
func NewModel(source string, total int64) Model {
	return Model{
		bar:    progress.New(progress.WithDefaultGradient()),
		source: source,
		total:  total,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
		if m.bar.Width > 72 {
			m.bar.Width = 72
		}
		return m, nil

	case ProgressMsg:
		m.bytes = msg.Bytes
		m.rounds = msg.Round
		if m.total > 0 {
			return m, m.bar.SetPercent(float64(m.bytes) / float64(m.total))
		}
		return m, nil

	case DoneMsg:
		m.bytes = msg.Bytes
		m.rounds = msg.Rounds
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		// The pipeline has no cancellation; quitting only detaches the
		// display while the copy runs to completion.
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	header := titleStyle.Render("shuttle") + " " + statusStyle.Render(m.source)

	var status string
	switch {
	case m.err != nil:
		status = errorStyle.Render(fmt.Sprintf("failed after %d bytes: %v", m.bytes, m.err))
	case m.done:
		status = doneStyle.Render(fmt.Sprintf("copied %d bytes in %d rounds", m.bytes, m.rounds))
	default:
		status = statusStyle.Render(fmt.Sprintf("%d bytes, round %d", m.bytes, m.rounds))
	}

	if m.total > 0 {
		return fmt.Sprintf("%s\n%s\n%s\n", header, m.bar.View(), status)
	}
	return fmt.Sprintf("%s\n%s\n", header, status)
}
