// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"code.hybscloud.com/bbq/internal/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	require.NoError(t, execute(context.Background(), "version"))
	assert.Equal(t, "bbqload dev\n", out.String())
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	logFile := filepath.Join(t.TempDir(), "bbqload.log")
	err := execute(context.Background(), "run",
		"--capacity", "2",
		"--timeout", "5ms",
		"--producers", "2",
		"--consumers", "2",
		"--items", "500",
		"--log-file", logFile)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "produced=500 consumed=500")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loadgen: finished")
}

func TestRun_InvalidCapacity(t *testing.T) {
	err := execute(context.Background(), "run", "--capacity", "0", "--items", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue.capacity")
}

// Unchanged flags rank below viper defaults, so a flag default that differs
// from config.SetDefaults would be shown in --help but never used.
func TestFlagDefaultsMatchConfig(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	tests := []struct {
		key   string
		flags *pflag.FlagSet
		flag  string
	}{
		{"logger.debug", rootCmd.PersistentFlags(), "debug"},
		{"logger.file_log_name", rootCmd.PersistentFlags(), "log-file"},
		{"queue.capacity", runCmd.Flags(), "capacity"},
		{"queue.timeout", runCmd.Flags(), "timeout"},
		{"queue.return_on_timeout", runCmd.Flags(), "return-on-timeout"},
		{"workload.producers", runCmd.Flags(), "producers"},
		{"workload.consumers", runCmd.Flags(), "consumers"},
		{"workload.items", runCmd.Flags(), "items"},
		{"workload.rate", runCmd.Flags(), "rate"},
		{"report.interval", runCmd.Flags(), "report"},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := tt.flags.Lookup(tt.flag)
			require.NotNil(t, f)
			assert.Equal(t, fmt.Sprint(v.Get(tt.key)), f.DefValue)
		})
	}
}
