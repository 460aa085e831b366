// Package orchestration runs one or more orbit classifiers concurrently and
// cross-checks their outputs. It decouples the engine from presentation via
// the ProgressReporter and ResultPresenter interfaces.
package orchestration
