package events

import (
	"context"
	"sync"
)

// MemoryQueue is an in-process job queue for single-binary deployments and
// tests.
type MemoryQueue struct {
	mu     sync.RWMutex
	jobs   chan Job
	closed bool
}

// NewMemoryQueue creates a queue holding up to size pending jobs.
func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 64
	}
	return &MemoryQueue{jobs: make(chan Job, size)}
}

// Publish enqueues job, blocking while the queue is full.
func (q *MemoryQueue) Publish(ctx context.Context, job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrClosed
	}
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Jobs returns the receive side of the queue. It is closed by Close.
func (q *MemoryQueue) Jobs() <-chan Job {
	return q.jobs
}

// Close stops accepting jobs. Pending jobs stay readable.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	return nil
}

var _ Publisher = (*MemoryQueue)(nil)
