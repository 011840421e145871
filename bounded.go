// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var _ Queue[int] = (*Bounded[int])(nil)

// Bounded is a fixed-capacity multi-producer multi-consumer blocking queue.
//
// A single mutex guards the items and the waiter list. A consumer that
// finds the queue empty registers a private wake channel before releasing
// the lock, so a wake-up issued after it started waiting is never lost.
// Each enqueued item wakes at most one parked consumer, an expired wait
// wakes only its own consumer, and closing wakes all of them.
//
// Producers are never suspended. Enqueue on a full queue returns false and
// leaves the retry decision to the caller.
//
// The open flag is a sync/atomic word so IsOpen needs no lock.
type Bounded[T any] struct {
	mu       sync.Mutex
	items    ring[T]
	capacity int
	waiters  []chan struct{} // Parked consumers in arrival order
	policy   WaitPolicy
	open     atomic.Bool // Written only with mu held
	log      *zap.Logger
	stats    counters
}

// NewBounded creates a queue holding at most capacity items with the
// default [RetryUntilClosed] wait policy.
//
// Panics if capacity < 1.
func NewBounded[T any](capacity int) *Bounded[T] {
	return Build[T](New(capacity))
}

func newBounded[T any](opts Options) *Bounded[T] {
	if opts.capacity < 1 {
		panic("bbq: capacity must be >= 1")
	}
	log := opts.logger
	if log == nil {
		log = zap.NewNop()
	}

	q := &Bounded[T]{
		items:    newRing[T](opts.capacity),
		capacity: opts.capacity,
		policy:   opts.policy,
		log:      log,
	}
	q.open.Store(true)
	return q
}

// Enqueue appends item at the tail.
// Returns false without blocking if the queue is full.
func (q *Bounded[T]) Enqueue(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.len() >= q.capacity {
		q.stats.rejected.Add(1)
		return false
	}
	q.items.push(item)
	q.stats.enqueued.Add(1)
	q.notify(1)
	return true
}

// Offer is the error-returning form of Enqueue.
// Returns ErrWouldBlock if the queue is full.
func (q *Bounded[T]) Offer(elem *T) error {
	if !q.Enqueue(*elem) {
		return ErrWouldBlock
	}
	return nil
}

// EnqueueBatch appends as many items as fit, in order.
// Returns the count enqueued; the remaining items are rejected.
func (q *Bounded[T]) EnqueueBatch(items []T) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := min(len(items), q.capacity-q.items.len())
	for i := range n {
		q.items.push(items[i])
	}
	q.stats.enqueued.Add(int64(n))
	q.stats.rejected.Add(int64(len(items) - n))
	q.notify(n)
	return n
}

// Dequeue removes and returns the head item, waiting while the queue is
// empty and open.
//
// Each wait attempt lasts at most timeout. When an attempt expires with no
// item, the [RetryUntilClosed] policy waits again and the
// [ReturnOnTimeout] policy returns (zero-value, false).
//
// Returns (zero-value, false) immediately once the queue is closed and
// empty.
func (q *Bounded[T]) Dequeue(timeout time.Duration) (T, bool) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	deadline := time.Now().Add(timeout)
	for {
		if elem, ok := q.pop(); ok {
			return elem, true
		}
		if !q.open.Load() {
			return zero, false
		}

		if timeout <= 0 {
			if q.policy == ReturnOnTimeout {
				return zero, false
			}
			q.park(time.Time{}, nil)
			continue
		}

		if !time.Now().Before(deadline) {
			q.stats.timeouts.Add(1)
			if q.policy == ReturnOnTimeout {
				return zero, false
			}
			q.log.Debug("bbq: dequeue wait timed out, waiting again",
				zap.Duration("timeout", timeout),
				zap.Int("waiting", len(q.waiters)))
			deadline = time.Now().Add(timeout)
		}
		q.park(deadline, nil)
	}
}

// Take removes and returns the head item, waiting while the queue is
// empty and open.
//
// Returns ErrClosed once the queue is closed and drained, or ctx.Err()
// if ctx is done first. A queued item is preferred over a done context.
func (q *Bounded[T]) Take(ctx context.Context) (T, error) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if elem, ok := q.pop(); ok {
			return elem, nil
		}
		if !q.open.Load() {
			return zero, ErrClosed
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		q.park(time.Time{}, ctx.Done())
	}
}

// Poll removes and returns the head item without waiting.
// Returns ErrWouldBlock if the queue is empty and open, ErrClosed if it
// is empty and closed.
func (q *Bounded[T]) Poll() (T, error) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	if elem, ok := q.pop(); ok {
		return elem, nil
	}
	if !q.open.Load() {
		return zero, ErrClosed
	}
	return zero, ErrWouldBlock
}

// DequeueBatch removes up to len(out) items into out without waiting.
// Returns the count dequeued.
func (q *Bounded[T]) DequeueBatch(out []T) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	count := 0
	for i := range out {
		elem, ok := q.pop()
		if !ok {
			break
		}
		out[i] = elem
		count++
	}
	return count
}

// SetOpen updates the open flag.
//
// SetOpen(false) closes the queue and wakes every consumer blocked in
// Dequeue or Take so each can drain the remaining items and return.
// Closing is idempotent. A closed queue stays closed: SetOpen(true) after
// close is ignored.
func (q *Bounded[T]) SetOpen(open bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.open.Load() {
		if open {
			q.log.Warn("bbq: ignoring attempt to reopen a closed queue")
		}
		return
	}
	if open {
		return
	}

	q.open.Store(false)
	waiting := len(q.waiters)
	q.notify(waiting)
	q.log.Debug("bbq: queue closed",
		zap.Int("pending", q.items.len()),
		zap.Int("waiting", waiting))
}

// Close closes the queue. Equivalent to SetOpen(false).
func (q *Bounded[T]) Close() {
	q.SetOpen(false)
}

// IsOpen reports whether the queue is still open.
// It does not take the queue lock.
func (q *Bounded[T]) IsOpen() bool {
	return q.open.Load()
}

// Len returns the number of queued items.
func (q *Bounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.len()
}

// Cap returns the queue capacity.
func (q *Bounded[T]) Cap() int {
	return q.capacity
}

// Policy returns the wait policy.
func (q *Bounded[T]) Policy() WaitPolicy {
	return q.policy
}

// pop must be called with q.mu held.
func (q *Bounded[T]) pop() (T, bool) {
	elem, ok := q.items.pop()
	if ok {
		q.stats.dequeued.Add(1)
	}
	return elem, ok
}

// notify wakes up to n parked consumers, oldest first. Must be called with
// q.mu held. A woken consumer is removed from the list, so each enqueued
// item is announced to a different consumer.
func (q *Bounded[T]) notify(n int) {
	n = min(n, len(q.waiters))
	for i := range n {
		q.waiters[i] <- struct{}{}
		q.waiters[i] = nil
	}
	q.waiters = q.waiters[n:]
}

// park suspends the caller until it is notified, the deadline passes (if
// non-zero) or done is closed (if non-nil). Must be called with q.mu held;
// the lock is released while parked and held again on return.
//
// A consumer always pops before parking again or returning, so an item
// announced to a consumer that also timed out is still taken by it.
func (q *Bounded[T]) park(deadline time.Time, done <-chan struct{}) {
	wake := make(chan struct{}, 1)
	q.waiters = append(q.waiters, wake)
	q.mu.Unlock()

	var expired <-chan time.Time
	var timer *time.Timer
	if !deadline.IsZero() {
		timer = time.NewTimer(time.Until(deadline))
		expired = timer.C
	}
	select {
	case <-wake:
	case <-expired:
	case <-done:
	}
	if timer != nil {
		timer.Stop()
	}

	q.mu.Lock()
	q.stats.wakeups.Add(1)
	q.forget(wake)
}

// forget removes wake from the waiter list if notify has not already.
func (q *Bounded[T]) forget(wake chan struct{}) {
	for i, w := range q.waiters {
		if w == wake {
			q.waiters = append(q.waiters[:i], q.waiters[i+1:]...)
			return
		}
	}
}
