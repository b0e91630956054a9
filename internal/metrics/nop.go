package metrics

import "time"

// NopMetrics discards every observation.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements DrawRecorder.
var _ DrawRecorder = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordDraw discards the draw observation.
func (n *NopMetrics) RecordDraw(_ /* outcome */ string, _ /* attempts */ int, _ /* duration */ time.Duration) {
	// No-op
}
