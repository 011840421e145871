// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Queue.Capacity)
	assert.Equal(t, time.Second, cfg.Queue.Timeout)
	assert.False(t, cfg.Queue.ReturnOnTimeout)
	assert.Equal(t, 4, cfg.Workload.Producers)
	assert.Equal(t, 4, cfg.Workload.Consumers)
	assert.Equal(t, 100000, cfg.Workload.Items)
	assert.Zero(t, cfg.Workload.Rate)
	assert.Equal(t, time.Second, cfg.Report.Interval)
	assert.Empty(t, cfg.Logger.FileLogName)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bbq.yaml")
	data := []byte(`
queue:
  capacity: 2
  timeout: 250ms
  return_on_timeout: true
workload:
  producers: 1
  consumers: 3
  items: 10
  rate: 50
report:
  interval: 0s
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Queue.Capacity)
	assert.Equal(t, 250*time.Millisecond, cfg.Queue.Timeout)
	assert.True(t, cfg.Queue.ReturnOnTimeout)
	assert.Equal(t, 1, cfg.Workload.Producers)
	assert.Equal(t, 3, cfg.Workload.Consumers)
	assert.Equal(t, 10, cfg.Workload.Items)
	assert.Equal(t, 50.0, cfg.Workload.Rate)
	assert.Zero(t, cfg.Report.Interval)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("BBQ_QUEUE_CAPACITY", "7")
	t.Setenv("BBQ_WORKLOAD_CONSUMERS", "9")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Queue.Capacity)
	assert.Equal(t, 9, cfg.Workload.Consumers)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("queue.capacity", 0)

	_, err := Load(v, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue.capacity")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Queue:    Queue{Capacity: 1},
			Workload: Workload{Producers: 1, Consumers: 1},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"capacity", func(c *Config) { c.Queue.Capacity = 0 }, "queue.capacity"},
		{"producers", func(c *Config) { c.Workload.Producers = 0 }, "workload.producers"},
		{"consumers", func(c *Config) { c.Workload.Consumers = -1 }, "workload.consumers"},
		{"items", func(c *Config) { c.Workload.Items = -1 }, "workload.items"},
		{"rate", func(c *Config) { c.Workload.Rate = -0.5 }, "workload.rate"},
		{"interval", func(c *Config) { c.Report.Interval = -time.Second }, "report.interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
