package intentengine

import (
	"context"
	"sync"

	"github.com/Swind/go-intent-engine/core"
)

// Engine bundles the four engine components around one MetricsStore and one
// ObserverRegistry. Components can also be constructed individually from the
// core package; Engine is the convenience wiring for the common case.
type Engine struct {
	store      *core.MetricsStore
	registry   *core.ObserverRegistry
	executor   *core.Executor
	dispatcher *core.DonationDispatcher
}

// NewEngine creates an engine dispatching donations to sink.
// sink may be nil when donations are not used. engineCfg may be nil for
// default handlers (no-op logger, no-op metrics).
func NewEngine(sink core.Sink, donationCfg core.DonationConfig, engineCfg *core.EngineConfig) *Engine {
	store := core.NewMetricsStore()
	registry := core.NewObserverRegistry()
	return &Engine{
		store:      store,
		registry:   registry,
		executor:   core.NewExecutor(store, engineCfg),
		dispatcher: core.NewDonationDispatcher(sink, registry, donationCfg, engineCfg),
	}
}

// Store returns the engine's MetricsStore.
func (e *Engine) Store() *core.MetricsStore { return e.store }

// Registry returns the engine's ObserverRegistry.
func (e *Engine) Registry() *core.ObserverRegistry { return e.registry }

// Executor returns the engine's Executor.
func (e *Engine) Executor() *core.Executor { return e.executor }

// Dispatcher returns the engine's DonationDispatcher.
func (e *Engine) Dispatcher() *core.DonationDispatcher { return e.dispatcher }

// =============================================================================
// Global Engine Helper (Singleton)
// =============================================================================

var (
	globalEngine *Engine
	globalMu     sync.Mutex
)

// InitGlobalEngine initializes the process-wide engine. Subsequent calls are
// no-ops; the first configuration wins. Hosts that need more than one engine,
// or explicit ownership, should construct Engine values directly instead.
func InitGlobalEngine(sink core.Sink, donationCfg core.DonationConfig, engineCfg *core.EngineConfig) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalEngine != nil {
		return // Already initialized
	}
	globalEngine = NewEngine(sink, donationCfg, engineCfg)
}

// GetGlobalEngine returns the global engine instance.
// It panics if InitGlobalEngine has not been called.
func GetGlobalEngine() *Engine {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalEngine == nil {
		panic("GlobalEngine not initialized. Call InitGlobalEngine() first.")
	}
	return globalEngine
}

// ShutdownGlobalEngine drops the global engine after clearing its pending
// donation queue. Queued, unflushed donations are discarded.
func ShutdownGlobalEngine() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalEngine != nil {
		globalEngine.dispatcher.ClearDonationQueue()
		globalEngine = nil
	}
}

// =============================================================================
// Convenience wrappers over the global engine
// =============================================================================

// Execute runs one operation on the global engine's executor.
func Execute[T any](ctx context.Context, intentType string, op core.Operation[T], cfg core.ExecutionConfig) (T, error) {
	return core.Execute(ctx, GetGlobalEngine().executor, intentType, op, cfg)
}

// ExecuteWithRetry runs an operation with retry on the global engine's executor.
func ExecuteWithRetry[T any](ctx context.Context, intentType string, op core.Operation[T], cfg core.ExecutionConfig) (T, error) {
	return core.ExecuteWithRetry(ctx, GetGlobalEngine().executor, intentType, op, cfg)
}

// Donate hands one item to the global engine's dispatcher.
func Donate(ctx context.Context, item core.Donation) error {
	return GetGlobalEngine().dispatcher.Donate(ctx, item)
}

// DonateBatch dispatches items in concurrent waves on the global engine's dispatcher.
func DonateBatch(ctx context.Context, items []core.Donation) error {
	return GetGlobalEngine().dispatcher.DonateBatch(ctx, items)
}
