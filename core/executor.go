package core

import (
	"context"
	"time"
)

// Default execution limits applied when ExecutionConfig carries zero values.
const (
	DefaultExecutionTimeout = 30 * time.Second
	DefaultRetryCount       = 3
	DefaultRetryDelay       = 1 * time.Second
)

// =============================================================================
// ExecutionConfig: Per-invocation execution limits
// =============================================================================

// ExecutionConfig controls one execution: deadline, retry budget, and whether
// the outcome is recorded in the MetricsStore. Passed by value per invocation.
type ExecutionConfig struct {
	// Timeout bounds a single attempt. Zero or negative falls back to
	// DefaultExecutionTimeout.
	Timeout time.Duration

	// RetryCount is the total attempt budget for ExecuteWithRetry
	// (attempt numbers 1..RetryCount inclusive). A value below 1 means no
	// attempt is made at all; ExecuteWithRetry fails immediately.
	RetryCount int

	// RetryDelay is the constant pause between a failed attempt and the next
	// one. No backoff growth is applied.
	RetryDelay time.Duration

	// RecordMetrics controls whether outcomes are appended to the MetricsStore.
	RecordMetrics bool
}

// DefaultExecutionConfig returns the standard limits:
// 30s timeout, 3 attempts, 1s constant retry delay, metrics recording on.
func DefaultExecutionConfig() ExecutionConfig {
	return ExecutionConfig{
		Timeout:       DefaultExecutionTimeout,
		RetryCount:    DefaultRetryCount,
		RetryDelay:    DefaultRetryDelay,
		RecordMetrics: true,
	}
}

func (c ExecutionConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultExecutionTimeout
	}
	return c.Timeout
}

// =============================================================================
// Executor: Deadline-bounded execution with optional retry
// =============================================================================

// Executor runs intent operations under a deadline and reports outcomes to a
// MetricsStore and a Metrics hook. The Executor itself holds no per-intent
// state; it is safe for concurrent use from any goroutine.
type Executor struct {
	store   *MetricsStore
	logger  Logger
	metrics Metrics
}

// NewExecutor creates an Executor reporting to the given store.
// Panics if store is nil. cfg may be nil for default handlers.
func NewExecutor(store *MetricsStore, cfg *EngineConfig) *Executor {
	if store == nil {
		panic("Executor: store must not be nil")
	}
	handlers := cfg.normalized()
	return &Executor{
		store:   store,
		logger:  handlers.Logger,
		metrics: handlers.Metrics,
	}
}

// Store returns the MetricsStore this executor reports to.
func (ex *Executor) Store() *MetricsStore {
	return ex.store
}

func (ex *Executor) recordOutcome(intentType string, duration time.Duration, success bool, record bool) {
	if record {
		ex.store.Record(intentType, duration, success)
	}
	ex.metrics.RecordExecution(intentType, duration, success)
}

// executionOutcome carries an operation's result across the race boundary.
type executionOutcome[T any] struct {
	result T
	err    error
}

// Execute runs one attempt of op under cfg.Timeout.
//
// The operation runs on its own goroutine and races the deadline; whichever
// finishes first determines the outcome. When the deadline wins, Execute fails
// with an ExecutionFailed error whose message contains "timed out". The
// operation's context is cancelled at that point so cooperative operations can
// stop early, but the engine does not wait for them: a late completion is
// discarded (the outcome channel is buffered so the goroutine never leaks).
//
// On success one success record is appended for intentType; on any failure
// (including timeout) one failure record is appended, and the cause is wrapped
// as ExecutionFailed. Records are only written when cfg.RecordMetrics is set.
//
// An empty intentType is resolved from the operation's function name.
func Execute[T any](ctx context.Context, ex *Executor, intentType string, op Operation[T], cfg ExecutionConfig) (T, error) {
	var zero T

	intentType = resolveIntentType(op, intentType)
	if op == nil {
		return zero, NewExecutionFailed(nil, "intent %q has no operation", intentType)
	}

	timeout := cfg.timeout()
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	// Buffered so the operation goroutine can always deliver and exit, even
	// when the deadline already won the race.
	done := make(chan executionOutcome[T], 1)
	go func() {
		result, err := op(opCtx)
		done <- executionOutcome[T]{result: result, err: err}
	}()

	select {
	case out := <-done:
		duration := time.Since(start)
		if out.err != nil {
			ex.recordOutcome(intentType, duration, false, cfg.RecordMetrics)
			ex.logger.Warn("intent execution failed",
				F("intent", intentType), F("duration", duration), F("error", out.err))
			return zero, NewExecutionFailed(out.err, "intent %q failed", intentType)
		}
		ex.recordOutcome(intentType, duration, true, cfg.RecordMetrics)
		ex.logger.Debug("intent execution completed",
			F("intent", intentType), F("duration", duration))
		return out.result, nil

	case <-opCtx.Done():
		duration := time.Since(start)
		ex.recordOutcome(intentType, duration, false, cfg.RecordMetrics)
		if ctx.Err() != nil {
			// The caller's context ended first; surface that rather than a
			// fictitious timeout.
			ex.logger.Warn("intent execution cancelled",
				F("intent", intentType), F("duration", duration))
			return zero, NewExecutionFailed(ctx.Err(), "intent %q cancelled", intentType)
		}
		ex.logger.Warn("intent execution timed out",
			F("intent", intentType), F("timeout", timeout))
		return zero, NewExecutionFailed(opCtx.Err(), "intent %q timed out after %s", intentType, timeout)
	}
}

// ExecuteWithRetry calls Execute up to cfg.RetryCount times and returns on the
// first success. Between a failed attempt and the next one it pauses for
// cfg.RetryDelay (constant, no backoff). When every attempt fails the last
// error is wrapped as ExecutionFailed naming the attempt count.
//
// cfg.RetryCount below 1 performs zero attempts: the operation is never
// invoked and an ExecutionFailed error is returned immediately.
func ExecuteWithRetry[T any](ctx context.Context, ex *Executor, intentType string, op Operation[T], cfg ExecutionConfig) (T, error) {
	var zero T

	intentType = resolveIntentType(op, intentType)
	if cfg.RetryCount < 1 {
		return zero, NewExecutionFailed(nil, "intent %q has a retry count of %d, no attempt made", intentType, cfg.RetryCount)
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.RetryCount; attempt++ {
		result, err := Execute(ctx, ex, intentType, op, cfg)
		if err == nil {
			return result, nil
		}
		lastErr = err
		ex.metrics.RecordRetry(intentType, attempt)

		if attempt == cfg.RetryCount {
			break
		}

		ex.logger.Info("retrying intent",
			F("intent", intentType), F("attempt", attempt), F("delay", cfg.RetryDelay))
		timer := time.NewTimer(cfg.RetryDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return zero, NewExecutionFailed(ctx.Err(), "intent %q cancelled while waiting to retry", intentType)
		}
	}

	return zero, NewExecutionFailed(lastErr, "intent %q failed after %d attempts", intentType, cfg.RetryCount)
}

// ExecuteAndReply runs Execute on its own goroutine and delivers the outcome
// to reply when the operation has fully completed.
//
// Execution guarantee (Happens-Before): the operation always completes (or
// times out) before reply starts, so reply sees the final result and error.
func ExecuteAndReply[T any](ctx context.Context, ex *Executor, intentType string, op Operation[T], cfg ExecutionConfig, reply Reply[T]) {
	go func() {
		result, err := Execute(ctx, ex, intentType, op, cfg)
		if reply != nil {
			reply(result, err)
		}
	}()
}
