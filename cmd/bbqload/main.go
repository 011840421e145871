// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command bbqload runs a producer/consumer workload against a bounded
// blocking queue and verifies exactly-once delivery.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.hybscloud.com/bbq/internal/config"
	"code.hybscloud.com/bbq/internal/loadgen"
	"code.hybscloud.com/bbq/internal/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const progName = "bbqload"

var version = "dev"

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.PersistentFlags().String("config", "", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug messages")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file, rotated by size")
	runCmd.Flags().IntP("capacity", "c", 1024, "Queue capacity")
	runCmd.Flags().DurationP("timeout", "t", time.Second, "Per-attempt dequeue timeout")
	runCmd.Flags().Bool("return-on-timeout", false, "Return from dequeue on timeout instead of waiting again")
	runCmd.Flags().IntP("producers", "p", 4, "Number of concurrent producers")
	runCmd.Flags().IntP("consumers", "n", 4, "Number of consumers")
	runCmd.Flags().IntP("items", "i", 100000, "Number of items to produce")
	runCmd.Flags().Float64P("rate", "r", 0, "Max. items/second across all producers, 0 means unlimited")
	runCmd.Flags().Duration("report", time.Second, "Progress report interval, 0 disables reporting")
	bindFlags(viper.GetViper())
}

// bindFlags maps command-line flags onto config keys. Flags override the
// config file and environment only when set explicitly.
func bindFlags(v *viper.Viper) {
	v.BindPFlag("logger.debug", rootCmd.PersistentFlags().Lookup("debug"))
	v.BindPFlag("logger.file_log_name", rootCmd.PersistentFlags().Lookup("log-file"))
	v.BindPFlag("queue.capacity", runCmd.Flags().Lookup("capacity"))
	v.BindPFlag("queue.timeout", runCmd.Flags().Lookup("timeout"))
	v.BindPFlag("queue.return_on_timeout", runCmd.Flags().Lookup("return-on-timeout"))
	v.BindPFlag("workload.producers", runCmd.Flags().Lookup("producers"))
	v.BindPFlag("workload.consumers", runCmd.Flags().Lookup("consumers"))
	v.BindPFlag("workload.items", runCmd.Flags().Lookup("items"))
	v.BindPFlag("workload.rate", runCmd.Flags().Lookup("rate"))
	v.BindPFlag("report.interval", runCmd.Flags().Lookup("report"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exit("Error returned from command", err)
	}
}

func exit(msg string, err error) {
	fmt.Fprintln(os.Stderr, msg+":", err)
	os.Exit(1)
}

var rootCmd = &cobra.Command{
	Use:           progName,
	Short:         "Load generator for the bbq bounded blocking queue",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), progName, version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a producer/consumer workload",
	Long: `Run feeds distinct items into a bounded queue from concurrent producers
while consumers drain it, closes the queue once every item is accepted, and
fails if any item is lost or delivered twice.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(viper.GetViper(), file)
		if err != nil {
			return err
		}

		log, err := logger.Setup(cfg.Logger)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := loadgen.Run(ctx, cfg, log.Named(progName))
		if err != nil {
			return errors.Wrap(err, "run")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "produced=%d consumed=%d rejected=%d timeouts=%d elapsed=%v throughput=%.0f/s\n",
			res.Produced, res.Consumed, res.Stats.Rejected, res.Stats.Timeouts, res.Elapsed, res.Throughput())
		log.Debug("bbqload: done", zap.Int("consumed", res.Consumed))
		return nil
	},
}

// execute runs the root command with args; used by tests.
func execute(ctx context.Context, args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
