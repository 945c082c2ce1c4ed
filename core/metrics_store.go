package core

import (
	"sort"
	"sync"
	"time"
)

// ExecutionRecord captures one completed execution attempt for an intent type.
// Records are immutable once stored.
type ExecutionRecord struct {
	Timestamp time.Time
	Duration  time.Duration
	Success   bool
}

// MetricsStore aggregates execution outcomes keyed by intent-type name.
//
// Writes are serialized; reads may proceed concurrently with each other and
// always observe a consistent snapshot. Per-key insertion order equals
// completion order and is never reordered.
type MetricsStore struct {
	mu      sync.RWMutex
	records map[string][]ExecutionRecord
}

// NewMetricsStore creates an empty MetricsStore.
func NewMetricsStore() *MetricsStore {
	return &MetricsStore{
		records: make(map[string][]ExecutionRecord),
	}
}

// Record appends one execution outcome for the given intent type.
// The record is stamped with the current time.
func (s *MetricsStore) Record(intentType string, duration time.Duration, success bool) {
	rec := ExecutionRecord{
		Timestamp: time.Now(),
		Duration:  duration,
		Success:   success,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[intentType] = append(s.records[intentType], rec)
}

// AverageExecutionTime returns the arithmetic mean of all recorded durations
// for the intent type. The second return value is false when no records exist.
func (s *MetricsStore) AverageExecutionTime(intentType string) (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[intentType]
	if len(recs) == 0 {
		return 0, false
	}

	var total time.Duration
	for _, rec := range recs {
		total += rec.Duration
	}
	return total / time.Duration(len(recs)), true
}

// SuccessRate returns successCount/totalCount in [0, 1] for the intent type.
// The second return value is false when no records exist.
func (s *MetricsStore) SuccessRate(intentType string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[intentType]
	if len(recs) == 0 {
		return 0, false
	}

	succeeded := 0
	for _, rec := range recs {
		if rec.Success {
			succeeded++
		}
	}
	return float64(succeeded) / float64(len(recs)), true
}

// Count returns the number of records stored for the intent type.
func (s *MetricsStore) Count(intentType string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records[intentType])
}

// Records returns a copy of all records for the intent type in completion order.
func (s *MetricsStore) Records(intentType string) []ExecutionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[intentType]
	if len(recs) == 0 {
		return nil
	}
	out := make([]ExecutionRecord, len(recs))
	copy(out, recs)
	return out
}

// Recent returns up to limit records for the intent type, newest first.
// limit <= 0 returns all records.
func (s *MetricsStore) Recent(intentType string, limit int) []ExecutionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[intentType]
	if len(recs) == 0 {
		return nil
	}
	if limit <= 0 || limit > len(recs) {
		limit = len(recs)
	}

	out := make([]ExecutionRecord, 0, limit)
	for i := range limit {
		out = append(out, recs[len(recs)-1-i])
	}
	return out
}

// IntentTypes returns the recorded intent-type names, sorted for stable output.
func (s *MetricsStore) IntentTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset atomically empties all keys. Records whose Record call returned before
// Reset was issued are guaranteed to be cleared; a Record racing with Reset
// lands either entirely before or entirely after it.
func (s *MetricsStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string][]ExecutionRecord)
}
