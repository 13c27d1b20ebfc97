package titledex

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// opMetrics counts and times client operations (check, corpus writes, ping).
type opMetrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newOpMetrics(reg prometheus.Registerer) (*opMetrics, error) {
	m := &opMetrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "titledex",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Client operations by name and outcome.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "titledex",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "Client operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.total); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers the collector, adopting an already-registered
// identical collector instead of failing. Two clients sharing one registry
// then share one set of metrics.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}

	var already prometheus.AlreadyRegisteredError
	if !errors.As(err, &already) {
		return fmt.Errorf("titledex: register metric: %w", err)
	}
	existing, ok := already.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("titledex: metric already registered with incompatible type: %T", already.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer fans operation outcomes out to the configured logger and
// registry. Both sinks are optional; a nil observer is silent.
type observer struct {
	logger  *slog.Logger
	metrics *opMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	obs := &observer{logger: logger}
	if reg != nil {
		m, err := newOpMetrics(reg)
		if err != nil {
			return nil, err
		}
		obs.metrics = m
	}
	return obs, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)

	if o.metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		o.metrics.total.WithLabelValues(op, outcome).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	}

	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("operation failed", "op", op, "duration", elapsed, "error", err)
	} else {
		o.logger.Debug("operation completed", "op", op, "duration", elapsed)
	}
}
