package ui

import (
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape sequences keyed by role.
type Theme struct {
	Name      string
	Primary   string // headings, orbit labels
	Secondary string // bit strings, secondary text
	Success   string
	Warning   string
	Error     string
	Info      string // orbit sizes, counts
	Bold      string
	Underline string
	Reset     string
}

var (
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;75m",
		Secondary: "\033[38;5;250m",
		Success:   "\033[38;5;114m",
		Warning:   "\033[38;5;221m",
		Error:     "\033[38;5;203m",
		Info:      "\033[38;5;183m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;25m",
		Secondary: "\033[38;5;238m",
		Success:   "\033[38;5;22m",
		Warning:   "\033[38;5;94m",
		Error:     "\033[38;5;160m",
		Info:      "\033[38;5;90m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme is selected by --no-color or the NO_COLOR variable.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	themeMu      sync.RWMutex
	currentTheme = DarkTheme
)

// TUITheme is the lipgloss palette of the interactive browser.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	On      lipgloss.TerminalColor // lit wheel slot
	Off     lipgloss.TerminalColor // dark wheel slot
}

var (
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#D8DEE9"),
		Border:  lipgloss.Color("#5E81AC"),
		Accent:  lipgloss.Color("#88C0D0"),
		Success: lipgloss.Color("#A3BE8C"),
		Error:   lipgloss.Color("#BF616A"),
		Dim:     lipgloss.Color("#4C566A"),
		On:      lipgloss.Color("#EBCB8B"),
		Off:     lipgloss.Color("#434C5E"),
	}

	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		On:      lipgloss.NoColor{},
		Off:     lipgloss.NoColor{},
	}
)

// ThemeNames returns the selectable theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = t
}

// SetTheme activates the named theme and reports whether the name was
// known. Unknown names leave the dark theme active.
func SetTheme(name string) bool {
	t, ok := themes[name]
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
	return ok
}

// InitTheme disables colors when noColor is set or NO_COLOR is present in
// the environment, and selects the dark theme otherwise.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}

// GetCurrentTUITheme returns the browser palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}
