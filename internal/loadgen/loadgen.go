// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package loadgen drives a queue with concurrent producers and consumers
// and checks that every accepted item is delivered exactly once.
package loadgen

import (
	"context"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/bbq"
	"code.hybscloud.com/bbq/active"
	"code.hybscloud.com/bbq/internal/config"
	"code.hybscloud.com/bbq/worker"
	"github.com/paulbellamy/ratecounter"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrDelivery is returned when an item was lost or delivered twice.
var ErrDelivery = errors.New("loadgen: delivery check failed")

// Result summarizes one run.
type Result struct {
	Produced   int // Items accepted by the queue
	Consumed   int // Items handed to consumers
	Duplicates int // Extra deliveries of an already delivered item
	Missing    int // Accepted items never delivered
	Elapsed    time.Duration
	Stats      bbq.Stats
}

// Throughput returns consumed items per second.
func (r Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Consumed) / r.Elapsed.Seconds()
}

// Run builds a queue from cfg.Queue, feeds it cfg.Workload.Items distinct
// items from cfg.Workload.Producers goroutines while cfg.Workload.Consumers
// drain it, then closes the queue and waits for the drain to finish.
func Run(ctx context.Context, cfg config.Config, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	b := bbq.New(cfg.Queue.Capacity).Logger(log.Named("queue"))
	if cfg.Queue.ReturnOnTimeout {
		b.ReturnOnTimeout()
	}
	q := bbq.Build[int](b)

	n := cfg.Workload.Items
	seen := make([]atomix.Int64, n)
	consumed := ratecounter.NewRateCounter(time.Second)
	handler := worker.HandlerFunc[int](func(_ context.Context, item int) error {
		if item < 0 || item >= n {
			return errors.Errorf("loadgen: unexpected item %d", item)
		}
		seen[item].Add(1)
		consumed.Incr(1)
		return nil
	})

	pool := worker.New[int](
		worker.Timed[int](q, cfg.Queue.Timeout),
		handler,
		worker.Config{Workers: cfg.Workload.Consumers},
		log.Named("worker"),
	)

	log.Info("loadgen: starting",
		zap.Int("capacity", q.Cap()),
		zap.Stringer("policy", q.Policy()),
		zap.Duration("timeout", cfg.Queue.Timeout),
		zap.Int("producers", cfg.Workload.Producers),
		zap.Int("consumers", pool.Workers()),
		zap.Int("items", n),
		zap.Float64("rate", cfg.Workload.Rate))

	start := time.Now()
	consumers := active.Start(ctx, pool.Run, active.WithName("consumers"), active.WithLogger(log))

	var reporter *active.Object
	if cfg.Report.Interval > 0 {
		r := NewReporter(q, consumed, cfg.Report.Interval, log.Named("report"))
		reporter = active.Start(ctx, r.Run, active.WithName("reporter"), active.WithLogger(log))
	}

	var limiter *rate.Limiter
	if cfg.Workload.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Workload.Rate), cfg.Workload.Producers)
	}

	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	produced, feedErr := worker.Feed[int](ctx, q, items, cfg.Workload.Producers, limiter)

	q.SetOpen(false)
	consumeErr := consumers.Wait()
	if reporter != nil {
		_ = reporter.Stop()
	}

	res := Result{
		Produced: produced,
		Consumed: int(pool.Processed()),
		Elapsed:  time.Since(start),
		Stats:    q.Stats(),
	}
	delivered := 0
	for i := range seen {
		if c := seen[i].Load(); c > 0 {
			delivered++
			res.Duplicates += int(c - 1)
		}
	}
	res.Missing = produced - delivered

	log.Info("loadgen: finished",
		zap.Int("produced", res.Produced),
		zap.Int("consumed", res.Consumed),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("missing", res.Missing),
		zap.Int64("rejected", res.Stats.Rejected),
		zap.Int64("timeouts", res.Stats.Timeouts),
		zap.Duration("elapsed", res.Elapsed),
		zap.Float64("throughput", res.Throughput()))

	switch {
	case feedErr != nil:
		return res, errors.Wrap(feedErr, "loadgen: producing")
	case consumeErr != nil:
		return res, errors.Wrap(consumeErr, "loadgen: consuming")
	case res.Duplicates > 0 || res.Missing > 0:
		return res, errors.Wrapf(ErrDelivery, "%d duplicates, %d missing", res.Duplicates, res.Missing)
	}
	return res, nil
}
