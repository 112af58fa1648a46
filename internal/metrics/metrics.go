// Package metrics records store activity with Prometheus collectors.
//
// garage is a short-lived process, so nothing is served over HTTP. The
// registry is written once at exit in the node-exporter textfile format
// when a metrics file is configured.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/garage/internal/storage"
)

// Result label values.
const (
	ResultOK         = "ok"
	ResultConstraint = "constraint"
	ResultNotFound   = "not_found"
	ResultError      = "error"
)

// Recorder holds the store collectors on a private registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "garage",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store operations by entity, operation and result.",
		}, []string{"entity", "op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "garage",
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Latency of store operations.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"entity", "op"}),
	}
	r.registry.MustRegister(r.operations, r.duration)
	return r
}

// Observe records one operation that started at start and finished with err.
func (r *Recorder) Observe(entity, op string, start time.Time, err error) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(entity, op, resultOf(err)).Inc()
	r.duration.WithLabelValues(entity, op).Observe(time.Since(start).Seconds())
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile atomically writes the current metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, storage.ErrConstraintViolation):
		return ResultConstraint
	case errors.Is(err, storage.ErrNotFound):
		return ResultNotFound
	default:
		return ResultError
	}
}
