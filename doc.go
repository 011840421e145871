// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bbq provides a bounded blocking FIFO queue.
//
// [Bounded] is a fixed-capacity hand-off point between any number of
// producer and consumer goroutines:
//
//   - Producers never block. Enqueue on a full queue returns false.
//   - Consumers block while the queue is empty, with a per-wait timeout.
//   - Closing the queue wakes every blocked consumer. Items already queued
//     are still delivered; after that, consumers get a clean "no more data".
//
// # Quick Start
//
//	q := bbq.NewBounded[Job](1024)
//
//	// Producer
//	if !q.Enqueue(job) {
//	    // Full - apply backpressure
//	}
//
//	// Consumer
//	for {
//	    job, ok := q.Dequeue(time.Second)
//	    if !ok {
//	        return // closed and drained
//	    }
//	    job.Run()
//	}
//
//	// Owner of the shutdown decision, exactly once
//	q.SetOpen(false)
//
// Builder API for non-default configuration:
//
//	q := bbq.Build[Job](bbq.New(1024).ReturnOnTimeout().Logger(log))
//
// # Wait Policies
//
// Dequeue takes a timeout that bounds each wait attempt. What happens when
// an attempt expires with the queue still open and empty is selected per
// queue:
//
//	RetryUntilClosed (default) - wait again; return only on item or close
//	ReturnOnTimeout            - return (zero-value, false)
//
// With RetryUntilClosed a single timeout is not a signal to give up, and a
// false result from Dequeue always means "closed and drained". With
// ReturnOnTimeout a false result is ambiguous; check IsOpen to tell a
// timeout from the end of the stream, or use Take and ErrClosed.
//
// # Backpressure
//
// Enqueue fails fast so backpressure stays visible to the caller instead of
// hiding in a blocked goroutine. [Push] is the stock retry policy: a short
// spin, then adaptive backoff, until accepted or the context is done.
//
//	if err := bbq.Push(ctx, q, job); err != nil {
//	    return err // ctx done or queue closed while full
//	}
//
// Or drop on overload:
//
//	if !q.Enqueue(job) {
//	    dropped.Add(1)
//	}
//
// # Context-Aware Consumers
//
// Take is the context form of Dequeue and separates every outcome:
//
//	for {
//	    job, err := q.Take(ctx)
//	    if bbq.IsClosed(err) {
//	        return nil // drained
//	    }
//	    if err != nil {
//	        return err // ctx.Err()
//	    }
//	    job.Run()
//	}
//
// Poll never waits and returns [ErrWouldBlock] on an empty open queue.
//
// # Shutdown
//
// The open flag moves one way, from open to closed:
//
//	q.SetOpen(false) // or q.Close()
//
// After close:
//   - every consumer parked in Dequeue or Take is woken
//   - queued items are still delivered, in order
//   - once empty, Dequeue returns (zero-value, false) and Take returns
//     ErrClosed, without blocking
//
// SetOpen(true) on a closed queue is ignored. IsOpen is an atomic load and
// is safe from any goroutine.
//
// # Guarantees
//
//   - 0 <= Len() <= Cap() at all times
//   - items leave in the order they entered
//   - each item is delivered to exactly one consumer
//   - a consumer parked on an empty queue observes the next enqueue without
//     any further nudge (no lost wake-ups)
//   - an enqueued item wakes at most one parked consumer, and an expired
//     wait attempt wakes only the consumer that armed it
//
// Among competing consumers there is no guarantee on which one receives a
// given item.
//
// # Error Handling
//
// Full and empty conditions are values, not failures. Error-returning forms
// use [ErrWouldBlock], sourced from [code.hybscloud.com/iox], and
// [ErrClosed]:
//
//	bbq.IsWouldBlock(err)  // true if full (Offer) or empty (Poll)
//	bbq.IsClosed(err)      // true if closed and drained
//	bbq.IsNonFailure(err)  // true if nil, ErrWouldBlock or ErrClosed
//
// The only panic is a capacity below 1 at construction.
//
// # Race Detection
//
// All queue state is guarded by a mutex, and the open flag is a
// [sync/atomic.Bool], so IsOpen may be called from any goroutine and the
// package is race-detector clean. Statistics counters use
// [code.hybscloud.com/atomix] and are only touched with the mutex held.
// Long stress tests are skipped via [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// backoff, [code.hybscloud.com/atomix] for statistics counters,
// [code.hybscloud.com/spin] for CPU pause instructions, and
// [go.uber.org/zap] for optional diagnostics.
package bbq
