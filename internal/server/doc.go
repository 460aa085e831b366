// Package server exposes the orbit classifier as an HTTP JSON service with
// Prometheus metrics, security headers and graceful shutdown.
package server
