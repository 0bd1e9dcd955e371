// SPDX-License-Identifier: MIT

package metrics

// NopMetrics discards every observation.
type NopMetrics struct{}

var _ Collector = (*NopMetrics)(nil)

// NewNop creates a new no-op collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// ObserveSolve discards the solve observation.
func (n *NopMetrics) ObserveSolve(_ /* n */, _ /* iterations */ int, _ /* seconds */ float64) {}

// ObserveUpdate discards the update observation.
func (n *NopMetrics) ObserveUpdate(_ /* axis */ string, _ /* changed */, _ /* iterations */ int, _ /* seconds */ float64) {
}

// IncrementError discards the error count.
func (n *NopMetrics) IncrementError(_ /* op */, _ /* kind */ string) {}

// SetSessions discards the session gauge.
func (n *NopMetrics) SetSessions(_ /* count */ int) {}
