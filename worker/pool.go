// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package worker connects queues to the code that fills and drains them.
//
// [Pool] runs a fixed number of consumers that Take from a queue and hand
// each item to a [Handler] until the queue is closed and drained. [Feed]
// is the producer side: bounded fan-out, optional pacing, and
// [bbq.Push] backpressure.
package worker

import (
	"context"
	"runtime"
	"strconv"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/bbq"
	"code.hybscloud.com/bbq/active"
	"go.uber.org/zap"
)

// Handler processes one dequeued item.
type Handler[T any] interface {
	Handle(ctx context.Context, item T) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[T any] func(ctx context.Context, item T) error

// Handle calls f(ctx, item).
func (f HandlerFunc[T]) Handle(ctx context.Context, item T) error {
	return f(ctx, item)
}

// Config sizes a Pool.
type Config struct {
	// Workers is the number of consumers. Zero means GOMAXPROCS.
	Workers int
}

// Pool is a set of consumers draining one queue.
type Pool[T any] struct {
	q       bbq.Taker[T]
	h       Handler[T]
	workers int
	log     *zap.Logger

	processed atomix.Int64
	failed    atomix.Int64
}

// New returns a Pool that feeds items taken from q to h.
// A nil logger discards output.
func New[T any](q bbq.Taker[T], h Handler[T], cfg Config, log *zap.Logger) *Pool[T] {
	if log == nil {
		log = zap.NewNop()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool[T]{q: q, h: h, workers: workers, log: log}
}

// Run starts the consumers and blocks until all of them exit.
//
// Consumers exit cleanly once the queue is closed and drained; Run then
// returns nil. If ctx is done first, Run returns ctx.Err(). Handler errors
// are logged and counted but do not stop the Pool.
func (p *Pool[T]) Run(ctx context.Context) error {
	g := active.NewGroup(ctx, active.WithName("worker"), active.WithLogger(p.log))
	for i := range p.workers {
		g.Go(func(ctx context.Context) error {
			return p.consume(ctx, p.log.With(zap.String("worker", strconv.Itoa(i))))
		})
	}
	return g.Wait()
}

func (p *Pool[T]) consume(ctx context.Context, log *zap.Logger) error {
	for {
		item, err := p.q.Take(ctx)
		if bbq.IsClosed(err) {
			log.Debug("worker: queue drained")
			return nil
		}
		if err != nil {
			return err
		}
		if err := p.h.Handle(ctx, item); err != nil {
			p.failed.Add(1)
			log.Warn("worker: handler failed", zap.Error(err))
			continue
		}
		p.processed.Add(1)
	}
}

// Workers returns the number of consumers Run starts.
func (p *Pool[T]) Workers() int {
	return p.workers
}

// Processed returns the number of items handled without error.
func (p *Pool[T]) Processed() int64 {
	return p.processed.Load()
}

// Failed returns the number of items whose handler returned an error.
func (p *Pool[T]) Failed() int64 {
	return p.failed.Load()
}
