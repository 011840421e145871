// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

// ring is a Lamport-style ring buffer with free-running head and tail
// counters. It is not safe for concurrent use; Bounded serializes access
// with its mutex.
//
// Physical size is a power of 2 so slot lookup is a mask. The logical
// bound is enforced by the owner, which allows any capacity >= 1.
type ring[T any] struct {
	buffer []T
	head   uint64 // Consumer reads from here
	tail   uint64 // Producer writes here
	mask   uint64
}

func newRing[T any](capacity int) ring[T] {
	n := uint64(roundToPow2(capacity))
	return ring[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

func (r *ring[T]) len() int {
	return int(r.tail - r.head)
}

func (r *ring[T]) push(elem T) {
	r.buffer[r.tail&r.mask] = elem
	r.tail++
}

// pop clears the vacated slot so the queue does not retain references
// to delivered items.
func (r *ring[T]) pop() (T, bool) {
	var zero T
	if r.head == r.tail {
		return zero, false
	}
	elem := r.buffer[r.head&r.mask]
	r.buffer[r.head&r.mask] = zero
	r.head++
	return elem, true
}
