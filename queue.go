package dispatchz

import (
	"fmt"
	"sync"
)

// Queue is a fixed-capacity FIFO of records.
// Enqueue never blocks; dequeue parks the caller until a record arrives.
// Safe for concurrent use by multiple producers and one consumer.
type Queue struct {
	records chan Record
	// mu orders enqueues against Close. The consumer side never takes it.
	mu     sync.RWMutex
	closed bool
}

// NewQueue creates a queue holding at most capacity records.
func NewQueue(capacity int) (*Queue, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("queue capacity %d: %w", capacity, ErrInvalidCapacity)
	}
	return &Queue{
		records: make(chan Record, capacity),
	}, nil
}

// TryEnqueue appends record at the tail.
// Returns false if the queue was full at the moment of the attempt or has
// been closed.
func (q *Queue) TryEnqueue(record Record) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}

	select {
	case q.records <- record:
		return true
	default:
		// Full - caller decides what to do with the record.
		return false
	}
}

// Dequeue removes the head record, waiting while the queue is empty.
// Returns false once done is closed. A record that is already available
// when done closes may still be returned; callers that stop must check done
// themselves if they need a hard cut.
func (q *Queue) Dequeue(done <-chan struct{}) (Record, bool) {
	select {
	case record := <-q.records:
		return record, true
	case <-done:
		return Record{}, false
	}
}

// TryDequeue removes the head record without waiting.
func (q *Queue) TryDequeue() (Record, bool) {
	select {
	case record := <-q.records:
		return record, true
	default:
		return Record{}, false
	}
}

// Close rejects further enqueues. Queued records stay available to
// TryDequeue and Dequeue. Every TryEnqueue that returned true did so before
// Close returned.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Count returns the number of queued records. Diagnostic only.
func (q *Queue) Count() int {
	return len(q.records)
}

// Capacity returns the maximum number of queued records.
func (q *Queue) Capacity() int {
	return cap(q.records)
}
