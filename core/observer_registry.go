package core

import (
	"sync"
	"sync/atomic"
)

// DonationObserver is an external listener notified of donation lifecycle
// events. Implementations must tolerate concurrent calls: notifications for
// different items may arrive from different goroutines.
type DonationObserver interface {
	// WillDonate is called before the item is handed to the sink.
	WillDonate(d Donation)

	// DidDonate is called after the sink accepted the item.
	DidDonate(d Donation)

	// DonationFailed is called when the sink rejected the item.
	DonationFailed(d Donation, err error)
}

// Registration is the non-owning handle tying an observer to a registry.
// Closing it marks the slot as absent; the registry never extends observer
// lifetime and silently skips closed slots while notifying.
type Registration struct {
	observer DonationObserver
	closed   atomic.Bool
}

// Close invalidates the registration. Safe to call multiple times and safe to
// call concurrently with an in-flight notification: the observer receives no
// events after Close returns, except those already being delivered.
func (r *Registration) Close() {
	r.closed.Store(true)
}

// Active reports whether the registration still receives notifications.
func (r *Registration) Active() bool {
	return !r.closed.Load()
}

// ObserverRegistry fans donation lifecycle events out to registered observers
// in registration order. The registry is safe for concurrent use; register and
// unregister may race freely with notifications.
type ObserverRegistry struct {
	mu   sync.RWMutex
	regs []*Registration
}

// NewObserverRegistry creates an empty registry.
func NewObserverRegistry() *ObserverRegistry {
	return &ObserverRegistry{}
}

// Register adds an observer and returns its registration handle.
// A nil observer yields an already-closed inert handle.
func (o *ObserverRegistry) Register(obs DonationObserver) *Registration {
	reg := &Registration{observer: obs}
	if obs == nil {
		reg.closed.Store(true)
		return reg
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.regs = append(o.regs, reg)
	return reg
}

// Unregister closes every live registration holding the given observer.
// Observers are matched by interface identity, so the same value passed to
// Register must be passed here (pointer observers satisfy this naturally).
func (o *ObserverRegistry) Unregister(obs DonationObserver) {
	if obs == nil {
		return
	}

	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, reg := range o.regs {
		if reg.observer == obs {
			reg.closed.Store(true)
		}
	}
}

// Len returns the number of live registrations.
func (o *ObserverRegistry) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	n := 0
	for _, reg := range o.regs {
		if reg.Active() {
			n++
		}
	}
	return n
}

// NotifyWillDonate delivers the will-donate event to every live observer in
// registration order. Notifying with zero observers is a no-op.
func (o *ObserverRegistry) NotifyWillDonate(d Donation) {
	o.notify(func(obs DonationObserver) { obs.WillDonate(d) })
}

// NotifyDidDonate delivers the did-donate event to every live observer in
// registration order.
func (o *ObserverRegistry) NotifyDidDonate(d Donation) {
	o.notify(func(obs DonationObserver) { obs.DidDonate(d) })
}

// NotifyDonationFailed delivers the failure event to every live observer in
// registration order.
func (o *ObserverRegistry) NotifyDonationFailed(d Donation, err error) {
	o.notify(func(obs DonationObserver) { obs.DonationFailed(d, err) })
}

func (o *ObserverRegistry) notify(deliver func(DonationObserver)) {
	// Snapshot under the read lock so observer callbacks run without holding
	// it; callbacks are free to register or unregister.
	o.mu.RLock()
	snapshot := make([]*Registration, len(o.regs))
	copy(snapshot, o.regs)
	o.mu.RUnlock()

	dead := 0
	for _, reg := range snapshot {
		if !reg.Active() {
			dead++
			continue
		}
		deliver(reg.observer)
	}

	if dead > 0 {
		o.prune()
	}
}

// prune drops closed registrations so the slice does not grow without bound
// under register/unregister churn. Registration order of the survivors is
// preserved.
func (o *ObserverRegistry) prune() {
	o.mu.Lock()
	defer o.mu.Unlock()

	live := o.regs[:0]
	for _, reg := range o.regs {
		if reg.Active() {
			live = append(live, reg)
		}
	}
	// Zero out the tail to release observer references
	for i := len(live); i < len(o.regs); i++ {
		o.regs[i] = nil
	}
	o.regs = live
}
