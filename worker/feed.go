// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package worker

import (
	"context"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/bbq"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
	"golang.org/x/time/rate"
)

// Feed submits items to q through [bbq.Push] from at most concurrency
// goroutines at a time. If limiter is non-nil, each submission first waits
// for a token.
//
// Returns the number of items accepted. On the first failure (ctx done or
// queue closed while full) no further items are started, in-flight ones
// finish, and the error is returned. Items are started in order, but with
// concurrency > 1 they may be accepted out of order.
func Feed[T any](ctx context.Context, q bbq.Producer[T], items []T, concurrency int, limiter *rate.Limiter) (int, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		sent     atomix.Int64
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() { firstErr = err })
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	swg := sizedwaitgroup.New(concurrency)
	for i, item := range items {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				fail(errors.Wrapf(err, "feed: waiting for rate limiter at item %d", i))
				break
			}
		}
		if ctx.Err() != nil {
			break
		}
		swg.Add()
		go func() {
			defer swg.Done()
			if err := bbq.Push(ctx, q, item); err != nil {
				fail(errors.Wrapf(err, "feed: pushing item %d", i))
				cancel()
				return
			}
			sent.Add(1)
		}()
	}
	swg.Wait()

	if firstErr == nil {
		// Cancelled by the caller before the first failure was recorded
		// by a goroutine.
		if err := ctx.Err(); err != nil && int(sent.Load()) < len(items) {
			firstErr = errors.Wrap(err, "feed")
		}
	}
	return int(sent.Load()), firstErr
}
