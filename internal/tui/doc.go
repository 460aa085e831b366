// Package tui implements the interactive orbit browser. A classification
// runs in the background through the orchestration layer; its progress and
// results reach the bubbletea program as messages through a shared program
// reference.
package tui
