// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import (
	"context"
	"time"
)

// Queue is the combined producer-consumer interface of a bounded blocking
// FIFO queue.
//
// Producers never block: Enqueue rejects work when the queue is full.
// Consumers block in Dequeue or Take while the queue is empty and open.
// Closing the queue (SetOpen(false)) releases every blocked consumer once
// the remaining items have been drained.
//
// Example:
//
//	q := bbq.NewBounded[int](128)
//
//	// Producer
//	if !q.Enqueue(42) {
//	    // Full: retry, drop, or use bbq.Push
//	}
//
//	// Consumer
//	for {
//	    v, ok := q.Dequeue(time.Second)
//	    if !ok {
//	        break // closed and drained
//	    }
//	    fmt.Println(v)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Taker[T]
	Shutdowner
	Len() int
	Cap() int
}

// Producer is the interface for enqueueing elements.
type Producer[T any] interface {
	// Enqueue appends item at the tail (non-blocking).
	// Returns false if the queue is full; the item is not stored.
	Enqueue(item T) bool
}

// Consumer is the interface for dequeueing elements with a timeout.
type Consumer[T any] interface {
	// Dequeue removes and returns the head item.
	//
	// While the queue is empty and open, Dequeue suspends the caller for at
	// most timeout per wait attempt. What happens when an attempt expires
	// depends on the queue's [WaitPolicy].
	//
	// Returns (zero-value, false) once the queue is closed and empty.
	Dequeue(timeout time.Duration) (T, bool)
}

// Taker is the context-aware form of [Consumer].
type Taker[T any] interface {
	// Take blocks until an item is available, the queue is closed and
	// drained (ErrClosed), or ctx is done (ctx.Err()).
	Take(ctx context.Context) (T, error)
}

// Shutdowner controls and observes the one-way open/closed state.
type Shutdowner interface {
	// SetOpen(false) closes the queue and wakes every blocked consumer.
	// SetOpen(true) never reopens a closed queue.
	SetOpen(open bool)

	// IsOpen reports whether the queue is still open.
	// Safe to call from any goroutine without holding any lock.
	IsOpen() bool
}
