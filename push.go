// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import (
	"context"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// pushSpinTries is the number of rejected attempts absorbed by CPU pause
// before Push falls back to adaptive backoff.
const pushSpinTries = 16

// Push enqueues item into p, retrying rejected attempts until the item is
// accepted or ctx is done.
//
// Push is the caller-side backpressure policy that Enqueue deliberately
// leaves out: a short spin phase for momentary bursts, then [iox.Backoff].
//
// Returns nil on success and ctx.Err() on cancellation. If p also
// implements [Shutdowner] and reports closed while full, Push gives up with
// ErrClosed instead of waiting for a consumer that may never come.
func Push[T any](ctx context.Context, p Producer[T], item T) error {
	s, _ := p.(Shutdowner)
	sw := spin.Wait{}
	backoff := iox.Backoff{}
	for i := 0; ; i++ {
		if p.Enqueue(item) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if s != nil && !s.IsOpen() {
			return ErrClosed
		}
		if i < pushSpinTries {
			sw.Once()
			continue
		}
		backoff.Wait()
	}
}
