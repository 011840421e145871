// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package loadgen

import (
	"context"
	"testing"
	"time"

	"code.hybscloud.com/bbq"
	"code.hybscloud.com/bbq/internal/config"
	"github.com/paulbellamy/ratecounter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig() config.Config {
	return config.Config{
		Queue:    config.Queue{Capacity: 2, Timeout: 5 * time.Millisecond},
		Workload: config.Workload{Producers: 3, Consumers: 2, Items: 2000},
	}
}

func TestRun_RetryUntilClosed(t *testing.T) {
	res, err := Run(context.Background(), testConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 2000, res.Produced)
	assert.Equal(t, 2000, res.Consumed)
	assert.Zero(t, res.Duplicates)
	assert.Zero(t, res.Missing)
	assert.EqualValues(t, 2000, res.Stats.Enqueued)
	assert.EqualValues(t, 2000, res.Stats.Dequeued)
	assert.False(t, res.Stats.Open)
	assert.Zero(t, res.Stats.Len)
}

func TestRun_ReturnOnTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.Queue.ReturnOnTimeout = true
	cfg.Queue.Capacity = 1

	res, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 2000, res.Consumed)
	assert.Zero(t, res.Missing)
}

func TestRun_Paced(t *testing.T) {
	cfg := testConfig()
	cfg.Workload.Items = 20
	cfg.Workload.Rate = 400
	cfg.Workload.Producers = 1

	res, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Consumed)
	assert.GreaterOrEqual(t, res.Elapsed, 40*time.Millisecond)
	assert.Positive(t, res.Throughput())
}

func TestRun_NoItems(t *testing.T) {
	cfg := testConfig()
	cfg.Workload.Items = 0

	res, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Zero(t, res.Produced)
	assert.Zero(t, res.Consumed)
}

func TestRun_ContextCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Workload.Rate = 10
	cfg.Workload.Producers = 1

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(50*time.Millisecond, cancel)

	res, err := Run(ctx, cfg, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, res.Produced, cfg.Workload.Items)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Queue.Capacity = 0

	_, err := Run(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestRun_Reports(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := testConfig()
	cfg.Workload.Items = 50
	cfg.Workload.Rate = 500
	cfg.Workload.Producers = 1
	cfg.Report.Interval = 10 * time.Millisecond

	_, err := Run(context.Background(), cfg, zap.New(core))
	require.NoError(t, err)

	assert.NotZero(t, logs.FilterMessage("loadgen: progress").Len())
	assert.Equal(t, 1, logs.FilterMessage("loadgen: finished").Len())
}

func TestReporter_Report(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	q := bbq.NewBounded[int](4)
	q.Enqueue(1)
	rc := ratecounter.NewRateCounter(time.Second)
	rc.Incr(3)

	NewReporter(q, rc, time.Second, zap.New(core)).Report()

	entries := logs.FilterMessage("loadgen: progress").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 1, fields["len"])
	assert.EqualValues(t, 1, fields["enqueued"])
	assert.EqualValues(t, 3, fields["items_per_sec"])
	assert.Equal(t, true, fields["open"])
}

func TestReporter_RunStopsOnCancel(t *testing.T) {
	q := bbq.NewBounded[int](1)
	r := NewReporter(q, ratecounter.NewRateCounter(time.Second), time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reporter did not stop")
	}
}
