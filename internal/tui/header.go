package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/orbitcalc/internal/format"
)

// HeaderModel renders the top bar: title, run parameters and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	run       string
	width     int
}

// NewHeaderModel returns a header with the timer started.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version}
}

// SetRun sets the run description, e.g. "N=7 twisted memo".
func (h *HeaderModel) SetRun(desc string) { h.run = desc }

// SetDone freezes the timer.
func (h *HeaderModel) SetDone() { h.endTime = time.Now() }

// Reset restarts the timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed returns the running or frozen duration.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	title := "Orbit Browser"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	row := titleStyle.Render(title)
	if h.run != "" {
		row += pipe + accentStyle.Render(h.run)
	}
	row += pipe + dimStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))
	return headerStyle.Width(max(h.width, lipgloss.Width(row))).Render(row)
}
