package core

import "time"

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting engine observability metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// This hook is independent of the MetricsStore aggregate: the store answers
// questions inside the process (average duration, success rate), the hook
// exports raw events to an external monitoring system.
//
// Implementations must be thread-safe; methods should be non-blocking and fast
// to avoid impacting intent execution performance.
type Metrics interface {
	// RecordExecution records one completed execution attempt.
	//
	// Parameters:
	// - intentType: The metrics key supplied by the intent layer
	// - duration: How long the attempt took
	// - success: Whether the attempt produced a result
	RecordExecution(intentType string, duration time.Duration, success bool)

	// RecordRetry records that a failed attempt is being retried.
	//
	// Parameters:
	// - intentType: The metrics key supplied by the intent layer
	// - attempt: The 1-based number of the attempt that failed
	RecordRetry(intentType string, attempt int)

	// RecordDonation records the outcome of one donation hand-off to the sink.
	//
	// Parameters:
	// - intentType: The intent type the donated item belongs to
	// - success: Whether the sink accepted the item
	RecordDonation(intentType string, success bool)

	// RecordQueueDepth records the current pending-donation queue depth.
	// Called whenever the queue is mutated.
	RecordQueueDepth(depth int)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordExecution is a no-op.
func (m *NilMetrics) RecordExecution(intentType string, duration time.Duration, success bool) {}

// RecordRetry is a no-op.
func (m *NilMetrics) RecordRetry(intentType string, attempt int) {}

// RecordDonation is a no-op.
func (m *NilMetrics) RecordDonation(intentType string, success bool) {}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(depth int) {}

// =============================================================================
// EngineConfig: Ambient handlers shared by Executor and DonationDispatcher
// =============================================================================

// EngineConfig holds the ambient handlers shared by engine components.
// All handlers are optional; if not provided, default implementations will be used.
type EngineConfig struct {
	// Logger receives engine log output. Defaults to NoOpLogger.
	Logger Logger

	// Metrics is called to export observability events. Defaults to NilMetrics.
	Metrics Metrics
}

// DefaultEngineConfig returns a config with default handlers.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Logger:  NewNoOpLogger(),
		Metrics: &NilMetrics{},
	}
}

// normalized returns a copy with nil handlers replaced by defaults.
// A nil receiver yields the full default config.
func (c *EngineConfig) normalized() EngineConfig {
	if c == nil {
		return *DefaultEngineConfig()
	}
	out := *c
	if out.Logger == nil {
		out.Logger = NewNoOpLogger()
	}
	if out.Metrics == nil {
		out.Metrics = &NilMetrics{}
	}
	return out
}
