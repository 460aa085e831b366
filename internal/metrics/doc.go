// Package metrics derives summary statistics from classification results and
// samples runtime memory around a run for the --details report.
package metrics
