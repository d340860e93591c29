package config

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment names read by Load.
const (
	EnvPrefix     = "BESTXI_"
	EnvConfigFile = "BESTXI_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if BESTXI_CONFIG is set
//  3. env (prefix BESTXI_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "config file %q", path), ErrLoadConfig)
		}
	}

	// BESTXI_LINEUP_SIZE -> lineup_size. Underscores are kept to match the
	// koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvConfigFile {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "config env"), ErrLoadConfig)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode config"), ErrLoadConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	invalid := func(msg string) error {
		return errors.Wrap(ErrInvalidConfig, msg)
	}

	if c.Addr == "" {
		return invalid("addr must not be empty")
	}
	if c.LineupSize <= 0 {
		return invalid("lineup_size must be positive")
	}
	if c.GeneralFormWindow < 0 || c.HeadToHeadWindow < 0 {
		return invalid("match windows must not be negative")
	}
	switch c.MissingPlayerPolicy {
	case "", "exclude", "zero":
	default:
		return invalid("missing_player_policy must be exclude or zero")
	}
	switch c.StoreDriver {
	case "csv":
		if c.DataFile == "" {
			return invalid("data_file is required for the csv driver")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return invalid("database_url is required for the postgres driver")
		}
	default:
		return invalid("store_driver must be csv or postgres")
	}
	if c.ArtifactsDir == "" {
		return invalid("artifacts_dir must not be empty")
	}
	return nil
}
