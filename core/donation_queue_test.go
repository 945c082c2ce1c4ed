package core

import (
	"sync"
	"testing"
)

// TestDonationQueue_DrainTakesAll verifies drain atomicity and ordering
// Given: Items enqueued in sequence
// When: Drain is called
// Then: All items come back in enqueue order and the queue is empty
func TestDonationQueue_DrainTakesAll(t *testing.T) {
	// Arrange
	q := newDonationQueue()
	for i := 0; i < 4; i++ {
		q.Enqueue(NewDonation("drain", i))
	}

	// Act
	drained := q.Drain()

	// Assert
	if len(drained) != 4 {
		t.Fatalf("drained %d items, want 4", len(drained))
	}
	for i, d := range drained {
		if d.Payload != i {
			t.Fatalf("drained[%d].Payload = %v, want %d", i, d.Payload, i)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("Len after drain = %d, want 0", q.Len())
	}
	if q.Drain() != nil {
		t.Fatal("draining an empty queue should return nil")
	}
}

// TestDonationQueue_ConcurrentEnqueueAndDrain verifies no item is lost or duplicated
// Given: Writers enqueueing while a drainer repeatedly drains
// When: All goroutines finish and a final drain runs
// Then: The total number of items seen equals the number enqueued
func TestDonationQueue_ConcurrentEnqueueAndDrain(t *testing.T) {
	// Arrange
	q := newDonationQueue()
	const writers = 4
	const perWriter = 250

	var wg sync.WaitGroup
	var drainedTotal int
	var drainedMu sync.Mutex
	stop := make(chan struct{})

	// Act
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			n := len(q.Drain())
			drainedMu.Lock()
			drainedTotal += n
			drainedMu.Unlock()
			select {
			case <-stop:
				return
			default:
			}
		}
	}()
	var writeWg sync.WaitGroup
	for w := 0; w < writers; w++ {
		writeWg.Add(1)
		go func() {
			defer writeWg.Done()
			for i := 0; i < perWriter; i++ {
				q.Enqueue(NewDonation("churn", i))
			}
		}()
	}
	writeWg.Wait()
	close(stop)
	wg.Wait()
	drainedTotal += len(q.Drain())

	// Assert
	if want := writers * perWriter; drainedTotal != want {
		t.Fatalf("drained %d items total, want %d", drainedTotal, want)
	}
}

// TestDonationQueue_Clear verifies clear drops everything
func TestDonationQueue_Clear(t *testing.T) {
	q := newDonationQueue()
	for i := 0; i < 10; i++ {
		q.Enqueue(NewDonation("clear", i))
	}

	q.Clear()

	if q.Len() != 0 {
		t.Fatalf("Len after Clear = %d, want 0", q.Len())
	}
}

// TestDonationQueue_ReusableAfterDrain verifies the queue accepts items after a burst
// Given: A queue grown by a burst and fully drained
// When: A new item is enqueued
// Then: The queue serves it normally
func TestDonationQueue_ReusableAfterDrain(t *testing.T) {
	// Arrange
	q := newDonationQueue()
	for i := 0; i < 200; i++ {
		q.Enqueue(NewDonation("burst", i))
	}
	q.Drain()

	// Act
	q.Enqueue(NewDonation("burst", 200))

	// Assert
	if q.Len() != 1 {
		t.Fatalf("Len = %d, want 1", q.Len())
	}
	drained := q.Drain()
	if len(drained) != 1 || drained[0].Payload != 200 {
		t.Fatalf("drained = %v, want the surviving item", drained)
	}
}
