package core

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"
)

// DonationDispatcher hands items to an external sink: immediately (Donate),
// in concurrent fixed-size waves (DonateBatch), or via a pending queue
// (QueueDonation + FlushDonationQueue). The ObserverRegistry is notified
// around every item regardless of the path taken.
//
// The dispatcher is safe for concurrent use from any goroutine.
type DonationDispatcher struct {
	sink     Sink
	registry *ObserverRegistry
	cfg      DonationConfig
	queue    *donationQueue
	logger   Logger
	metrics  Metrics
}

// NewDonationDispatcher creates a dispatcher for the given sink.
// Panics if registry is nil. engineCfg may be nil for default handlers.
// sink may be nil, in which case every dispatch fails with DonationFailed.
func NewDonationDispatcher(sink Sink, registry *ObserverRegistry, cfg DonationConfig, engineCfg *EngineConfig) *DonationDispatcher {
	if registry == nil {
		panic("DonationDispatcher: registry must not be nil")
	}
	handlers := engineCfg.normalized()
	return &DonationDispatcher{
		sink:     sink,
		registry: registry,
		cfg:      cfg,
		queue:    newDonationQueue(),
		logger:   handlers.Logger,
		metrics:  handlers.Metrics,
	}
}

// Registry returns the observer registry this dispatcher notifies.
func (d *DonationDispatcher) Registry() *ObserverRegistry {
	return d.registry
}

// Config returns the dispatch configuration.
func (d *DonationDispatcher) Config() DonationConfig {
	return d.cfg
}

// Donate hands one item to the sink. Observers are notified will-donate before
// the sink call and did-donate after it succeeds, or donation-failed with the
// error. The sink is attempted up to cfg.RetryCount times back to back; only
// the final outcome is observed and reported. A sink failure is wrapped as
// DonationFailed.
//
// When the dispatcher is disabled this is a silent no-op.
func (d *DonationDispatcher) Donate(ctx context.Context, item Donation) error {
	if !d.cfg.Enabled {
		return nil
	}

	d.registry.NotifyWillDonate(item)

	if d.sink == nil {
		err := NewDonationFailed(nil, "no donation sink configured")
		d.registry.NotifyDonationFailed(item, err)
		d.metrics.RecordDonation(item.IntentType, false)
		return err
	}

	var err error
	for attempt := 1; attempt <= d.cfg.retryCount(); attempt++ {
		err = d.sink(ctx, item)
		if err == nil {
			break
		}
	}

	if err != nil {
		d.registry.NotifyDonationFailed(item, err)
		d.metrics.RecordDonation(item.IntentType, false)
		d.logger.Warn("donation failed",
			F("donation", item.ID), F("intent", item.IntentType), F("error", err))
		return NewDonationFailed(err, "donation %s for intent %q failed", item.ID, item.IntentType)
	}

	d.registry.NotifyDidDonate(item)
	d.metrics.RecordDonation(item.IntentType, true)
	d.logger.Debug("donation delivered",
		F("donation", item.ID), F("intent", item.IntentType))
	return nil
}

// DonateBatch partitions items into consecutive chunks of cfg.BatchSize (the
// last chunk may be smaller) and dispatches every item of a chunk concurrently,
// waiting for the whole wave before starting the next one. Chunk order follows
// the input; completion order within a wave is not guaranteed.
//
// Failures are independent per item: a failed item never aborts its siblings
// or later chunks. Every per-item error is collected, and a non-empty set is
// reported as a single DonationFailed whose message carries the failure count
// and the combined descriptions.
//
// cfg.DelayBetweenBatches, when positive, is inserted between waves. If ctx
// ends during that pause the remaining chunks are abandoned and the context
// error joins the aggregate.
//
// When the dispatcher is disabled this is a silent no-op.
func (d *DonationDispatcher) DonateBatch(ctx context.Context, items []Donation) error {
	if !d.cfg.Enabled || len(items) == 0 {
		return nil
	}

	batchSize := d.cfg.batchSize()
	var (
		mu     sync.Mutex
		failed []error
	)

	collect := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, err)
	}

waves:
	for start := 0; start < len(items); start += batchSize {
		end := min(start+batchSize, len(items))
		chunk := items[start:end]

		var wg sync.WaitGroup
		for _, item := range chunk {
			wg.Add(1)
			go func(item Donation) {
				defer wg.Done()
				if err := d.Donate(ctx, item); err != nil {
					collect(err)
				}
			}(item)
		}
		wg.Wait()

		if end < len(items) && d.cfg.DelayBetweenBatches > 0 {
			timer := time.NewTimer(d.cfg.DelayBetweenBatches)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				collect(ctx.Err())
				break waves
			}
		}
	}

	if len(failed) > 0 {
		d.logger.Warn("donation batch completed with failures",
			F("total", len(items)), F("failed", len(failed)))
		return NewDonationFailed(multierr.Combine(failed...),
			"%d of %d donations failed", len(failed), len(items))
	}
	return nil
}

// QueueDonation appends the item to the pending queue without dispatching it.
// The queue accepts items even while the dispatcher is disabled.
func (d *DonationDispatcher) QueueDonation(item Donation) {
	depth := d.queue.Enqueue(item)
	d.metrics.RecordQueueDepth(depth)
}

// PendingCount returns the number of queued, not yet flushed items.
func (d *DonationDispatcher) PendingCount() int {
	return d.queue.Len()
}

// FlushDonationQueue atomically drains the pending queue and donates each
// drained item sequentially, in enqueue order. The first failure aborts the
// remainder of the flush and the already-drained, undispatched items are
// dropped, not re-queued. This is deliberately stricter than DonateBatch;
// both behaviors are part of the contract.
//
// When the dispatcher is disabled the queue is left untouched and nil is
// returned.
func (d *DonationDispatcher) FlushDonationQueue(ctx context.Context) error {
	if !d.cfg.Enabled {
		return nil
	}

	drained := d.queue.Drain()
	d.metrics.RecordQueueDepth(d.queue.Len())
	if len(drained) == 0 {
		return nil
	}

	for i, item := range drained {
		if err := d.Donate(ctx, item); err != nil {
			if dropped := len(drained) - i - 1; dropped > 0 {
				d.logger.Warn("flush aborted, dropping drained items",
					F("dispatched", i), F("dropped", dropped))
			}
			return err
		}
	}

	d.logger.Debug("donation queue flushed", F("count", len(drained)))
	return nil
}

// ClearDonationQueue atomically discards all pending items without
// dispatching them.
func (d *DonationDispatcher) ClearDonationQueue() {
	d.queue.Clear()
	d.metrics.RecordQueueDepth(0)
}
