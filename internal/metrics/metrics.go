// SPDX-License-Identifier: MIT

// Package metrics records solver activity. Collector is implemented by a
// Prometheus-backed type for the service and a no-op type for the CLI and tests.
package metrics

// Collector receives one call per solver operation.
type Collector interface {
	// ObserveSolve records a from-scratch solve of an n×n instance.
	ObserveSolve(n, iterations int, seconds float64)
	// ObserveUpdate records an incremental re-optimization along axis
	// ("row" or "column") touching changed lines.
	ObserveUpdate(axis string, changed, iterations int, seconds float64)
	// IncrementError counts a rejected operation by op and error kind.
	IncrementError(op, kind string)
	// SetSessions reports the number of live solver sessions.
	SetSessions(count int)
}
