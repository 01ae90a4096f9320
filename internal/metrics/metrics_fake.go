package metrics

import "time"

// metricsFake is a no-op implementation of MetricsLogger
type metricsFake struct{}

// Ensure metricsFake implements MetricsLogger
var _ MetricsLogger = (*metricsFake)(nil)

// NewMetricsFake creates a MetricsLogger that drops everything
func NewMetricsFake() MetricsLogger {
	return &metricsFake{}
}

// LogEvent is a no-op method
func (metrics *metricsFake) LogEvent(_ string, _ map[string]string, _ map[string]interface{}) {
	// No operation, this is a fake logger
}

// LogRequest is a no-op method
func (metrics *metricsFake) LogRequest(_ string, _ string, _ int, _ time.Duration) {
	// No operation, this is a fake logger
}

// Close is a no-op method
func (metrics *metricsFake) Close() {
	// No operation, this is a fake logger
}
