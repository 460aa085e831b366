// Package logging provides the structured logging interface used by the
// orbit classifier's server and application layers. It hides the backend
// (zerolog, or the standard library logger as a fallback) behind Logger.
package logging
