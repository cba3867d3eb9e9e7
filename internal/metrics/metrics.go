// Package metrics counts session activity with Prometheus collectors.
//
// The tool has no HTTP listener, so the registry is never scraped directly.
// When a textfile path is configured the registry is written in the text
// exposition format at logoff, ready for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "moving_items"

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"

	// Confirmation-gated operations that did not run.
	ResultDeclined = "declined"
	ResultInvalid  = "invalid"
)

// Recorder owns a private registry and the collectors registered on it.
type Recorder struct {
	registry     *prometheus.Registry
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	authAttempts *prometheus.CounterVec
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Item operations run, by operation and result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent in item operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"operation"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Signup and login attempts, by flow and result.",
		}, []string{"flow", "result"}),
	}

	r.registry.MustRegister(r.operations, r.duration, r.authAttempts)
	return r
}

// ObserveOperation records one item operation.
func (r *Recorder) ObserveOperation(operation string, err error, elapsed time.Duration) {
	r.operations.WithLabelValues(operation, result(err)).Inc()
	r.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveSkipped records an operation that was answered but not carried out.
// No duration is observed since nothing ran.
func (r *Recorder) ObserveSkipped(operation, result string) {
	r.operations.WithLabelValues(operation, result).Inc()
}

// ObserveAuth records one signup or login attempt.
func (r *Recorder) ObserveAuth(flow string, err error) {
	r.authAttempts.WithLabelValues(flow, result(err)).Inc()
}

// WriteTextfile writes the registry to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
