// Package ui holds the color themes shared by the CLI presenter, the REPL
// and the TUI browser. Color helpers read the active theme so callers never
// embed escape codes directly.
package ui
