package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/orbitcalc/internal/ui"
)

var (
	panelStyle      lipgloss.Style
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	dimStyle        lipgloss.Style
	accentStyle     lipgloss.Style
	selectedStyle   lipgloss.Style
	labelStyle      lipgloss.Style
	ringOnStyle     lipgloss.Style
	ringOffStyle    lipgloss.Style
	errorStyle      lipgloss.Style
	doneStyle       lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds the styles from the current ui theme. Run calls it
// again after the application has selected its theme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(t.Accent).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	accentStyle = lipgloss.NewStyle().Foreground(t.Accent)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(t.On)
	labelStyle = lipgloss.NewStyle().Foreground(t.Dim).Width(8)
	ringOnStyle = lipgloss.NewStyle().Foreground(t.On)
	ringOffStyle = lipgloss.NewStyle().Foreground(t.Off)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	doneStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	footerKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	footerDescStyle = lipgloss.NewStyle().Foreground(t.Dim)
}
