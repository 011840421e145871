// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import "code.hybscloud.com/atomix"

// Stats is a point-in-time snapshot of queue activity.
type Stats struct {
	Enqueued int64 // Items accepted by Enqueue, Offer and EnqueueBatch
	Rejected int64 // Items refused because the queue was full
	Dequeued int64 // Items handed to a consumer
	Timeouts int64 // Expired Dequeue wait attempts
	Wakeups  int64 // Parked consumers resumed, for any reason
	Len      int   // Items currently queued
	Waiting  int   // Consumers currently parked
	Open     bool
}

// counters are only written with the queue mutex held.
type counters struct {
	enqueued atomix.Int64
	rejected atomix.Int64
	dequeued atomix.Int64
	timeouts atomix.Int64
	wakeups  atomix.Int64
}

// Stats returns a consistent snapshot of the queue counters.
func (q *Bounded[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	return Stats{
		Enqueued: q.stats.enqueued.Load(),
		Rejected: q.stats.rejected.Load(),
		Dequeued: q.stats.dequeued.Load(),
		Timeouts: q.stats.timeouts.Load(),
		Wakeups:  q.stats.wakeups.Load(),
		Len:      q.items.len(),
		Waiting:  len(q.waiters),
		Open:     q.open.Load(),
	}
}
