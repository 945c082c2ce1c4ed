package intentengine

import "github.com/Swind/go-intent-engine/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the intentengine package for most use cases.

// Operation is the unit of work: an asynchronous callable producing a typed result
type Operation[T any] = core.Operation[T]

// ExecutionConfig controls one execution (timeout, retry budget, metrics recording)
type ExecutionConfig = core.ExecutionConfig

// ExecutionRecord captures one completed execution attempt
type ExecutionRecord = core.ExecutionRecord

// MetricsStore aggregates execution outcomes keyed by intent-type name
type MetricsStore = core.MetricsStore

// Donation is an opaque item handed to an external donation sink
type Donation = core.Donation

// Sink is the external system receiving donated items
type Sink = core.Sink

// DonationConfig controls dispatch behavior
type DonationConfig = core.DonationConfig

// DonationDispatcher hands items to an external sink
type DonationDispatcher = core.DonationDispatcher

// DonationObserver is an external listener notified of donation lifecycle events
type DonationObserver = core.DonationObserver

// ObserverRegistry fans donation lifecycle events out to registered observers
type ObserverRegistry = core.ObserverRegistry

// Registration is the non-owning handle tying an observer to a registry
type Registration = core.Registration

// ErrorKind classifies engine failures
type ErrorKind = core.ErrorKind

// Error kind constants
const (
	ErrorKindMissingInput     ErrorKind = core.ErrorKindMissingInput
	ErrorKindValidationFailed ErrorKind = core.ErrorKindValidationFailed
	ErrorKindDonationFailed   ErrorKind = core.ErrorKindDonationFailed
	ErrorKindExecutionFailed  ErrorKind = core.ErrorKindExecutionFailed
)

// Convenience constructors and predicates
var (
	DefaultExecutionConfig = core.DefaultExecutionConfig
	DefaultDonationConfig  = core.DefaultDonationConfig
	DefaultEngineConfig    = core.DefaultEngineConfig
	NewDonation            = core.NewDonation
	IsExecutionFailed      = core.IsExecutionFailed
	IsDonationFailed       = core.IsDonationFailed
)
