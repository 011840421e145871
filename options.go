// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import "go.uber.org/zap"

// WaitPolicy selects what Dequeue does when a wait attempt times out while
// the queue is still open and empty.
type WaitPolicy uint8

const (
	// RetryUntilClosed re-arms the wait after every timeout. Dequeue only
	// returns once an item arrives or the queue is closed and drained.
	// The timeout bounds each individual wait, not the call.
	RetryUntilClosed WaitPolicy = iota

	// ReturnOnTimeout makes Dequeue return (zero-value, false) as soon as
	// the timeout elapses with no item available. A non-positive timeout
	// turns Dequeue into a non-blocking poll.
	ReturnOnTimeout
)

// String returns the policy name.
func (p WaitPolicy) String() string {
	switch p {
	case RetryUntilClosed:
		return "retry-until-closed"
	case ReturnOnTimeout:
		return "return-on-timeout"
	default:
		return "unknown"
	}
}

// Options configures queue creation.
type Options struct {
	capacity int
	policy   WaitPolicy
	logger   *zap.Logger
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	// Default: consumers wait until an item arrives or the queue closes
//	q := bbq.Build[Job](bbq.New(1024))
//
//	// Bounded latency: Dequeue gives up after each timeout
//	q := bbq.Build[Job](bbq.New(1024).ReturnOnTimeout())
//
//	// With diagnostics
//	q := bbq.Build[Job](bbq.New(1024).Logger(zapLogger))
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Capacity is exact: New(3) holds at most three items.
//
// Panics if capacity < 1.
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("bbq: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// ReturnOnTimeout selects the [ReturnOnTimeout] wait policy.
func (b *Builder) ReturnOnTimeout() *Builder {
	b.opts.policy = ReturnOnTimeout
	return b
}

// Policy sets the wait policy explicitly.
func (b *Builder) Policy(p WaitPolicy) *Builder {
	b.opts.policy = p
	return b
}

// Logger attaches a logger for wait and shutdown diagnostics.
// A nil logger disables logging.
func (b *Builder) Logger(l *zap.Logger) *Builder {
	b.opts.logger = l
	return b
}

// Build creates a Bounded[T] from the builder configuration.
func Build[T any](b *Builder) *Bounded[T] {
	return newBounded[T](b.opts)
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
