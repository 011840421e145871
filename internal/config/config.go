// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads the bbqload settings from defaults, an optional
// config file, BBQ_* environment variables and bound command-line flags.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. BBQ_QUEUE_CAPACITY.
const EnvPrefix = "bbq"

// Config is the full bbqload configuration.
type Config struct {
	Queue    Queue    `mapstructure:"queue"`
	Workload Workload `mapstructure:"workload"`
	Logger   Logger   `mapstructure:"logger"`
	Report   Report   `mapstructure:"report"`
}

// Queue configures the queue under test.
type Queue struct {
	Capacity        int           `mapstructure:"capacity"`
	Timeout         time.Duration `mapstructure:"timeout"`
	ReturnOnTimeout bool          `mapstructure:"return_on_timeout"`
}

// Workload configures the producers and consumers.
type Workload struct {
	Producers int     `mapstructure:"producers"`
	Consumers int     `mapstructure:"consumers"`
	Items     int     `mapstructure:"items"`
	Rate      float64 `mapstructure:"rate"` // Items per second, 0 is unlimited
}

// Logger configures logging. File output is disabled when FileLogName is
// empty.
type Logger struct {
	Debug       bool   `mapstructure:"debug"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxSize     int    `mapstructure:"max_size"` // Megabytes
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"` // Days
	Compress    bool   `mapstructure:"compress"`
}

// Report configures the periodic progress log. Zero disables it.
type Report struct {
	Interval time.Duration `mapstructure:"interval"`
}

// SetDefaults registers every key with its default value. Keys without a
// default are invisible to AutomaticEnv during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("queue.capacity", 1024)
	v.SetDefault("queue.timeout", time.Second)
	v.SetDefault("queue.return_on_timeout", false)

	v.SetDefault("workload.producers", 4)
	v.SetDefault("workload.consumers", 4)
	v.SetDefault("workload.items", 100000)
	v.SetDefault("workload.rate", 0.0)

	v.SetDefault("logger.debug", false)
	v.SetDefault("logger.file_log_name", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)

	v.SetDefault("report.interval", time.Second)
}

// Load reads the configuration into a Config and validates it.
// If file is non-empty it must exist.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "config: reading %s", file)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: decoding")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Queue.Capacity < 1:
		return errors.Errorf("config: queue.capacity must be >= 1, got %d", c.Queue.Capacity)
	case c.Workload.Producers < 1:
		return errors.Errorf("config: workload.producers must be >= 1, got %d", c.Workload.Producers)
	case c.Workload.Consumers < 1:
		return errors.Errorf("config: workload.consumers must be >= 1, got %d", c.Workload.Consumers)
	case c.Workload.Items < 0:
		return errors.Errorf("config: workload.items must be >= 0, got %d", c.Workload.Items)
	case c.Workload.Rate < 0:
		return errors.Errorf("config: workload.rate must be >= 0, got %g", c.Workload.Rate)
	case c.Report.Interval < 0:
		return errors.Errorf("config: report.interval must be >= 0, got %v", c.Report.Interval)
	case c.Logger.FileLogName != "" && c.Logger.MaxSize < 0:
		return errors.Errorf("config: logger.max_size must be >= 0, got %d", c.Logger.MaxSize)
	}
	return nil
}
