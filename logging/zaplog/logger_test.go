package zaplog

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Swind/go-intent-engine/core"
)

func newObservedLogger() (*Logger, *observer.ObservedLogs) {
	zapCore, logs := observer.New(zapcore.DebugLevel)
	return New(zap.New(zapCore)), logs
}

func TestLogger_LevelsAndFields(t *testing.T) {
	logger, logs := newObservedLogger()

	logger.Debug("debug msg", core.F("k", "v"))
	logger.Info("info msg", core.F("count", 3))
	logger.Warn("warn msg")
	logger.Error("error msg")

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("captured %d entries, want 4", len(entries))
	}

	wantLevels := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, want := range wantLevels {
		if entries[i].Level != want {
			t.Fatalf("entry %d level = %v, want %v", i, entries[i].Level, want)
		}
	}

	fields := entries[0].ContextMap()
	if fields["k"] != "v" {
		t.Fatalf("debug field k = %v, want v", fields["k"])
	}
	if got := entries[1].ContextMap()["count"]; got != int64(3) {
		t.Fatalf("info field count = %v, want 3", got)
	}
}

func TestLogger_ErrorValuesUseNamedError(t *testing.T) {
	logger, logs := newObservedLogger()

	cause := errors.New("boom")
	logger.Error("operation failed", core.F("error", cause))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("captured %d entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["error"]; got != "boom" {
		t.Fatalf("error field = %v, want boom", got)
	}
}

func TestNew_NilZapLoggerIsNoOp(t *testing.T) {
	logger := New(nil)

	// Must not panic
	logger.Info("dropped")

	if logger.Zap() == nil {
		t.Fatal("Zap() should expose the underlying no-op logger")
	}
}
