package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Donation is an opaque item handed to an external donation sink. The engine
// never inspects Payload; IntentType is carried for metrics labelling only.
type Donation struct {
	ID         uuid.UUID
	IntentType string
	Payload    any
	CreatedAt  time.Time
}

// NewDonation creates a Donation with a fresh ID and creation timestamp.
func NewDonation(intentType string, payload any) Donation {
	return Donation{
		ID:         uuid.New(),
		IntentType: intentType,
		Payload:    payload,
		CreatedAt:  time.Now(),
	}
}

// Sink is the external system receiving donated items, supplied by the host
// platform. The dispatcher has no knowledge of what the sink does.
type Sink func(ctx context.Context, d Donation) error

// =============================================================================
// DonationConfig
// =============================================================================

// Default donation limits applied when DonationConfig carries zero values.
const (
	DefaultBatchSize          = 5
	DefaultDonationRetryCount = 1
)

// DonationConfig controls dispatch behavior. Immutable value.
type DonationConfig struct {
	// Enabled gates all dispatch. When false, Donate, DonateBatch, and
	// FlushDonationQueue are silent no-ops; the pending queue still accepts
	// items so donations are not lost while dispatch is switched off.
	Enabled bool

	// BatchSize is the number of items dispatched concurrently per wave.
	// Always treated as at least 1.
	BatchSize int

	// DelayBetweenBatches is the pause inserted between consecutive waves of
	// DonateBatch. Zero means waves run back to back.
	DelayBetweenBatches time.Duration

	// RetryCount is the number of sink attempts per item. Always treated as
	// at least 1.
	RetryCount int
}

// DefaultDonationConfig returns the standard dispatch settings:
// enabled, waves of 5, no inter-wave delay, one sink attempt per item.
func DefaultDonationConfig() DonationConfig {
	return DonationConfig{
		Enabled:    true,
		BatchSize:  DefaultBatchSize,
		RetryCount: DefaultDonationRetryCount,
	}
}

func (c DonationConfig) batchSize() int {
	if c.BatchSize < 1 {
		return 1
	}
	return c.BatchSize
}

func (c DonationConfig) retryCount() int {
	if c.RetryCount < 1 {
		return 1
	}
	return c.RetryCount
}
