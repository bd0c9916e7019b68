package rmcv

import (
	"sync"
)

// noCopy may be embedded into structs which must not be copied after first
// use, it is picked up by the go vet copylocks checker
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// ParallelQueue is an unbounded FIFO queue safe for use by multiple
// goroutines.  All access is serialized through a single mutex and blocking
// pops wait on a condition variable.  A ParallelQueue must not be copied,
// use Copy to take a snapshot.
type ParallelQueue[T any] struct {
	noCopy noCopy
	mu     sync.Mutex
	cond   *sync.Cond
	data   []T
}

// NewParallelQueue returns an empty queue
func NewParallelQueue[T any]() *ParallelQueue[T] {
	q := &ParallelQueue[T]{
		data: make([]T, 0),
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Copy locks the queue and returns a new queue holding a snapshot of its
// contents
func (q *ParallelQueue[T]) Copy() *ParallelQueue[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	c := NewParallelQueue[T]()
	c.data = append(c.data, q.data...)

	return c
}

// Push adds an item to the back of the queue and wakes one waiting Pop
func (q *ParallelQueue[T]) Push(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.data = append(q.data, item)
	q.cond.Signal()
}

// TryPop removes and returns the front item without blocking.  The boolean
// is false when the queue is empty.
func (q *ParallelQueue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.data) == 0 {
		var zero T
		return zero, false
	}

	return q.popFront(), true
}

// Pop removes and returns the front item, blocking until one is available
func (q *ParallelQueue[T]) Pop() T {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.data) == 0 {
		q.cond.Wait()
	}

	return q.popFront()
}

// Empty returns true if the queue has no items
func (q *ParallelQueue[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.data) == 0
}

// Len returns the number of queued items
func (q *ParallelQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.data)
}

// popFront must be called with the lock held on a non empty queue
func (q *ParallelQueue[T]) popFront() T {
	item := q.data[0]

	// release the reference so popped items can be collected
	var zero T
	q.data[0] = zero
	q.data = q.data[1:]

	return item
}
