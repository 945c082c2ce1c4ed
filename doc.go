// Package intentengine wraps asynchronous intent operations with operational
// guarantees: bounded execution time, bounded retries, aggregate performance
// metrics, and reliable batched dispatch of donation events to an external
// sink, with pluggable lifecycle observation.
//
// # Quick Start
//
// Initialize the global engine at application startup with the donation sink
// supplied by your host platform:
//
//	intentengine.InitGlobalEngine(mySink, core.DefaultDonationConfig(), nil)
//	defer intentengine.ShutdownGlobalEngine()
//
// Execute an operation under a deadline with retries:
//
//	order, err := intentengine.ExecuteWithRetry(ctx, "PlaceOrder",
//		func(ctx context.Context) (Order, error) {
//			return placeOrder(ctx)
//		}, core.DefaultExecutionConfig())
//
// # Key Concepts
//
// Operation: an externally supplied asynchronous unit of work returning a
// typed result or failing. The engine races it against a deadline; the loser
// of the race is abandoned, not force-terminated, though its context is
// cancelled so cooperative operations can stop early.
//
// MetricsStore: thread-safe per-intent-type aggregation of execution outcomes.
// Average execution time and success rate are answered in-process; the
// observability/prometheus package exports the same events to Prometheus.
//
// DonationDispatcher: hands opaque items to the host's donation sink, either
// one at a time, in concurrent fixed-size waves (DonateBatch), or via a
// pending queue that is flushed later. Batch dispatch collects every per-item
// failure into one aggregate error; a queue flush is deliberately fail-fast.
//
// ObserverRegistry: fan-out of will-donate / did-donate / donation-failed
// events to registered observers in registration order, without extending any
// observer's lifetime.
//
// # Ownership
//
// Every component can be constructed explicitly (core.NewMetricsStore,
// core.NewExecutor, core.NewObserverRegistry, core.NewDonationDispatcher) and
// passed to whichever layer needs it. The global engine is a convenience for
// hosts that want ambient access; it must be initialized once at startup and
// torn down at shutdown, and holds the only process-wide state.
package intentengine
