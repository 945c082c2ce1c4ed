package prometheus

import (
	"errors"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/Swind/go-intent-engine/core"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	DurationBuckets []float64
}

// MetricsExporter adapts core.Metrics to Prometheus collectors.
type MetricsExporter struct {
	executionDurationSeconds *prom.HistogramVec
	executionTotal           *prom.CounterVec
	retryTotal               *prom.CounterVec
	donationTotal            *prom.CounterVec
	donationQueueDepth       prom.Gauge
}

var _ core.Metrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers Prometheus collectors for core.Metrics.
func NewMetricsExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = "intentengine"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.DurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	durationVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "execution_duration_seconds",
		Help:      "Intent execution duration in seconds.",
		Buckets:   buckets,
	}, []string{"intent", "outcome"})
	executionVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "execution_total",
		Help:      "Total number of completed execution attempts.",
	}, []string{"intent", "outcome"})
	retryVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "retry_total",
		Help:      "Total number of retried execution attempts.",
	}, []string{"intent"})
	donationVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "donation_total",
		Help:      "Total number of donation hand-offs to the sink.",
	}, []string{"intent", "outcome"})
	queueDepthGauge := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "donation_queue_depth",
		Help:      "Current pending-donation queue depth.",
	})

	var err error
	if durationVec, err = registerCollector(reg, durationVec); err != nil {
		return nil, err
	}
	if executionVec, err = registerCollector(reg, executionVec); err != nil {
		return nil, err
	}
	if retryVec, err = registerCollector(reg, retryVec); err != nil {
		return nil, err
	}
	if donationVec, err = registerCollector(reg, donationVec); err != nil {
		return nil, err
	}
	if queueDepthGauge, err = registerCollector(reg, queueDepthGauge); err != nil {
		return nil, err
	}

	return &MetricsExporter{
		executionDurationSeconds: durationVec,
		executionTotal:           executionVec,
		retryTotal:               retryVec,
		donationTotal:            donationVec,
		donationQueueDepth:       queueDepthGauge,
	}, nil
}

// RecordExecution records one completed execution attempt.
func (m *MetricsExporter) RecordExecution(intentType string, duration time.Duration, success bool) {
	if m == nil {
		return
	}
	intent := normalizeLabel(intentType, "unknown")
	outcome := outcomeLabel(success)
	m.executionDurationSeconds.WithLabelValues(intent, outcome).Observe(duration.Seconds())
	m.executionTotal.WithLabelValues(intent, outcome).Inc()
}

// RecordRetry records a retried execution attempt.
func (m *MetricsExporter) RecordRetry(intentType string, attempt int) {
	if m == nil {
		return
	}
	m.retryTotal.WithLabelValues(normalizeLabel(intentType, "unknown")).Inc()
}

// RecordDonation records a donation hand-off outcome.
func (m *MetricsExporter) RecordDonation(intentType string, success bool) {
	if m == nil {
		return
	}
	m.donationTotal.WithLabelValues(normalizeLabel(intentType, "unknown"), outcomeLabel(success)).Inc()
}

// RecordQueueDepth records the pending-donation queue depth.
func (m *MetricsExporter) RecordQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.donationQueueDepth.Set(float64(depth))
}

func normalizeLabel(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
