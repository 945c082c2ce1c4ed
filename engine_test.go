package intentengine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Swind/go-intent-engine/core"
)

// collectingSink records every donation it receives.
type collectingSink struct {
	mu    sync.Mutex
	items []core.Donation
	err   error
}

func (s *collectingSink) sink() core.Sink {
	return func(ctx context.Context, d core.Donation) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.err != nil {
			return s.err
		}
		s.items = append(s.items, d)
		return nil
	}
}

func (s *collectingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// TestNewEngine_ComponentsShareState verifies the convenience wiring
// Given: An engine built with NewEngine
// When: The executor runs an operation
// Then: The outcome lands in the engine's own MetricsStore
func TestNewEngine_ComponentsShareState(t *testing.T) {
	// Arrange
	engine := NewEngine(nil, DefaultDonationConfig(), nil)
	cfg := DefaultExecutionConfig()
	cfg.RecordMetrics = true

	// Act
	result, err := core.Execute(context.Background(), engine.Executor(), "Wired", func(ctx context.Context) (int, error) {
		return 7, nil
	}, cfg)

	// Assert
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result != 7 {
		t.Fatalf("result = %d, want 7", result)
	}
	if got := engine.Store().Count("Wired"); got != 1 {
		t.Fatalf("store holds %d records for Wired, want 1", got)
	}
}

// TestGlobalEngine_Lifecycle verifies init, reuse, and shutdown
// Given: A fresh process-wide engine
// When: InitGlobalEngine runs twice and ShutdownGlobalEngine follows
// Then: The first init wins, the same instance is returned, and shutdown
// discards the instance along with its queued donations
func TestGlobalEngine_Lifecycle(t *testing.T) {
	defer ShutdownGlobalEngine()

	// Arrange
	first := &collectingSink{}
	second := &collectingSink{}
	InitGlobalEngine(first.sink(), DefaultDonationConfig(), nil)
	InitGlobalEngine(second.sink(), DefaultDonationConfig(), nil)

	engine := GetGlobalEngine()
	if engine == nil {
		t.Fatal("GetGlobalEngine returned nil after init")
	}
	if GetGlobalEngine() != engine {
		t.Fatal("GetGlobalEngine should return the same instance")
	}

	// Act: donate through the wrapper; the first sink must receive it
	if err := Donate(context.Background(), NewDonation("Lifecycle", "payload")); err != nil {
		t.Fatalf("Donate failed: %v", err)
	}

	// Assert
	if first.count() != 1 {
		t.Fatalf("first sink received %d items, want 1", first.count())
	}
	if second.count() != 0 {
		t.Fatalf("second init should have been a no-op, sink received %d items", second.count())
	}

	// Shutdown drops queued-but-unflushed donations
	engine.Dispatcher().QueueDonation(NewDonation("Lifecycle", "pending"))
	ShutdownGlobalEngine()
	if first.count() != 1 {
		t.Fatalf("shutdown must not flush, sink received %d items", first.count())
	}
}

// TestGetGlobalEngine_PanicsWhenUninitialized verifies the fail-fast contract
func TestGetGlobalEngine_PanicsWhenUninitialized(t *testing.T) {
	ShutdownGlobalEngine()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("GetGlobalEngine should panic before InitGlobalEngine")
		}
	}()
	GetGlobalEngine()
}

// TestGlobalWrappers_ExecuteAndRetry verifies the package-level helpers
// Given: An initialized global engine
// When: Execute and ExecuteWithRetry run through the wrappers
// Then: Results flow back and retries honor the configured budget
func TestGlobalWrappers_ExecuteAndRetry(t *testing.T) {
	defer ShutdownGlobalEngine()

	// Arrange
	InitGlobalEngine(nil, DefaultDonationConfig(), nil)
	cfg := ExecutionConfig{
		Timeout:       time.Second,
		RetryCount:    3,
		RetryDelay:    time.Millisecond,
		RecordMetrics: true,
	}

	// Act
	greeting, err := Execute(context.Background(), "Greet", func(ctx context.Context) (string, error) {
		return "hello", nil
	}, cfg)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	attempts := 0
	flaky := func(ctx context.Context) (int, error) {
		attempts++
		if attempts < 2 {
			return 0, errors.New("transient")
		}
		return attempts, nil
	}
	n, err := ExecuteWithRetry(context.Background(), "Flaky", flaky, cfg)

	// Assert
	if greeting != "hello" {
		t.Fatalf("greeting = %q, want %q", greeting, "hello")
	}
	if err != nil {
		t.Fatalf("ExecuteWithRetry failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("flaky succeeded on attempt %d, want 2", n)
	}
	store := GetGlobalEngine().Store()
	if got := store.Count("Greet"); got != 1 {
		t.Fatalf("Greet records = %d, want 1", got)
	}
	if got := store.Count("Flaky"); got != 2 {
		t.Fatalf("Flaky records = %d, want 2", got)
	}
}

// TestGlobalWrappers_DonateBatch verifies batch dispatch through the wrapper
func TestGlobalWrappers_DonateBatch(t *testing.T) {
	defer ShutdownGlobalEngine()

	sink := &collectingSink{}
	cfg := DefaultDonationConfig()
	cfg.BatchSize = 2
	InitGlobalEngine(sink.sink(), cfg, nil)

	items := []Donation{
		NewDonation("Batch", 1),
		NewDonation("Batch", 2),
		NewDonation("Batch", 3),
	}
	if err := DonateBatch(context.Background(), items); err != nil {
		t.Fatalf("DonateBatch failed: %v", err)
	}

	if sink.count() != 3 {
		t.Fatalf("sink received %d items, want 3", sink.count())
	}
}
