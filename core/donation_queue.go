package core

import "sync"

const defaultQueueCap = 16

// donationQueue is the pending-items queue behind QueueDonation/Flush/Clear.
// Enqueue and drain are atomic with respect to each other: a drain takes
// exactly the items enqueued before it acquired the lock, and an item is never
// partially visible. Drain and Clear hand the backing array away (or drop it),
// so a one-off burst does not pin memory.
type donationQueue struct {
	mu    sync.Mutex
	items []Donation
}

func newDonationQueue() *donationQueue {
	return &donationQueue{
		items: make([]Donation, 0, defaultQueueCap),
	}
}

func (q *donationQueue) Enqueue(d Donation) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, d)
	return len(q.items)
}

// Drain atomically takes all pending items, in enqueue order, and leaves the
// queue empty. Items enqueued concurrently with a drain land either in this
// snapshot or in the next one, never in both.
func (q *donationQueue) Drain() []Donation {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil
	}

	drained := q.items
	q.items = make([]Donation, 0, defaultQueueCap)
	return drained
}

// Clear drops all pending items without dispatching them.
func (q *donationQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	// Fresh slice to release payload references
	q.items = make([]Donation, 0, defaultQueueCap)
}

func (q *donationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
