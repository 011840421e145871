// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package loadgen

import (
	"context"
	"time"

	"code.hybscloud.com/bbq"
	"github.com/paulbellamy/ratecounter"
	"go.uber.org/zap"
)

// StatsSource is implemented by *bbq.Bounded.
type StatsSource interface {
	Stats() bbq.Stats
}

// Reporter periodically logs queue statistics and consumer throughput.
type Reporter struct {
	src      StatsSource
	rate     *ratecounter.RateCounter
	interval time.Duration
	log      *zap.Logger
}

// NewReporter returns a Reporter. rate counts consumed items over a one
// second window.
func NewReporter(src StatsSource, rate *ratecounter.RateCounter, interval time.Duration, log *zap.Logger) *Reporter {
	return &Reporter{src: src, rate: rate, interval: interval, log: log}
}

// Run logs every interval until ctx is done. It is an active.Task.
func (r *Reporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Report()
		}
	}
}

// Report logs one snapshot.
func (r *Reporter) Report() {
	s := r.src.Stats()
	r.log.Info("loadgen: progress",
		zap.Int("len", s.Len),
		zap.Int("waiting", s.Waiting),
		zap.Bool("open", s.Open),
		zap.Int64("enqueued", s.Enqueued),
		zap.Int64("dequeued", s.Dequeued),
		zap.Int64("rejected", s.Rejected),
		zap.Int64("timeouts", s.Timeouts),
		zap.Int64("wakeups", s.Wakeups),
		zap.Int64("items_per_sec", r.rate.Rate()))
}
