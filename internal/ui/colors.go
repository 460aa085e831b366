package ui

// ColorRed returns the error color of the active theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color of the active theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color of the active theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color of the active theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorCyan returns the secondary color of the active theme.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorMagenta returns the info color of the active theme.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorBold returns the bold escape of the active theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape of the active theme.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the reset escape of the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// Colorize wraps s in color and the active reset sequence. With the
// no-color theme both are empty and s is returned unchanged.
func Colorize(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
