// Package config loads the settings of the jobtrack CLI.
package config

import (
	"fmt"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nrfta/jobtrack"
)

// EnvPrefix prefixes every environment variable, e.g. JOBTRACK_PAGING_MAX_TAKE.
const EnvPrefix = "JOBTRACK"

// Config is the complete configuration.
type Config struct {
	DatabaseURL string        `mapstructure:"database_url"`
	Paging      PagingConfig  `mapstructure:"paging"`
	Filters     FiltersConfig `mapstructure:"filters"`
	Log         LogConfig     `mapstructure:"log"`
}

// PagingConfig holds page size limits.
type PagingConfig struct {
	DefaultTake int `mapstructure:"default_take"`
	MaxTake     int `mapstructure:"max_take"`
}

// FiltersConfig controls how malformed filters are handled.
type FiltersConfig struct {
	// Strict rejects malformed filters instead of dropping them.
	Strict bool `mapstructure:"strict"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database_url", "")
	v.SetDefault("paging.default_take", paging.DefaultPageSize)
	v.SetDefault("paging.max_take", paging.DefaultMaxPageSize)
	v.SetDefault("filters.strict", false)
	v.SetDefault("log.level", "info")
}

// Load reads configuration with the following precedence:
// 1. Environment variables
// 2. Config file
// 3. Default values
//
// An empty path searches for jobtrack.yaml in the working directory and
// $HOME/.jobtrack; a missing file is not an error in that case.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("jobtrack")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.jobtrack")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Paging.DefaultTake <= 0 {
		return fmt.Errorf("paging.default_take must be positive, got %d", c.Paging.DefaultTake)
	}
	if c.Paging.MaxTake <= 0 {
		return fmt.Errorf("paging.max_take must be positive, got %d", c.Paging.MaxTake)
	}
	if c.Paging.DefaultTake > c.Paging.MaxTake {
		return fmt.Errorf("paging.default_take %d exceeds paging.max_take %d", c.Paging.DefaultTake, c.Paging.MaxTake)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(err, "invalid log.level %q", c.Log.Level)
	}
	return nil
}

// PageOptions returns the paginator options for the configured sizes.
func (c *Config) PageOptions() []paging.PaginateOption {
	return []paging.PaginateOption{
		paging.WithDefaultSize(c.Paging.DefaultTake),
		paging.WithMaxSize(c.Paging.MaxTake),
	}
}

// Logger builds a production JSON logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log.level %q", c.Log.Level)
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build()
}
