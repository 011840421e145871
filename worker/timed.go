// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package worker

import (
	"context"
	"time"

	"code.hybscloud.com/bbq"
)

// Timed adapts a Consumer to [bbq.Taker] by calling Dequeue(timeout) in a
// loop.
//
// ctx is only checked between wait attempts. With a RetryUntilClosed
// queue an attempt ends on an item or on close, so cancellation is not
// observed until then; use the queue's own Take when that matters.
//
// If c also implements [bbq.Shutdowner], a false result on an open queue
// is treated as a timeout and retried. Otherwise every false result is
// taken to mean closed and drained.
func Timed[T any](c bbq.Consumer[T], timeout time.Duration) bbq.Taker[T] {
	s, _ := c.(bbq.Shutdowner)
	return timed[T]{c: c, s: s, timeout: timeout}
}

type timed[T any] struct {
	c       bbq.Consumer[T]
	s       bbq.Shutdowner
	timeout time.Duration
}

func (t timed[T]) Take(ctx context.Context) (T, error) {
	var zero T
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		// Sampled before Dequeue: closed-then-empty is final, but an item
		// may still land between a timeout and the close.
		closed := t.s == nil || !t.s.IsOpen()
		if v, ok := t.c.Dequeue(t.timeout); ok {
			return v, nil
		}
		if closed {
			return zero, bbq.ErrClosed
		}
	}
}
