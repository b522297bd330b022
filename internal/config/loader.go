package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if TRAZO_CONFIG is set
//  3. env (prefix TRAZO_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("TRAZO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: TRAZO_ADDR, TRAZO_DB_USER, ...
	// Map env keys like TRAZO_DB_USER -> db_user (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("TRAZO_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "trazo_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the process cannot serve with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DBURL == "":
		return fmt.Errorf("%w: db_url must not be empty", ErrInvalidConfig)
	case c.ModelFunction == "":
		return fmt.Errorf("%w: model_function must not be empty", ErrInvalidConfig)
	case c.PoolMinConns < 1:
		return fmt.Errorf("%w: pool_min_conns must be at least 1", ErrInvalidConfig)
	case c.PoolMaxConns < c.PoolMinConns:
		return fmt.Errorf("%w: pool_max_conns must be >= pool_min_conns", ErrInvalidConfig)
	case c.AcquireTimeoutMS <= 0:
		return fmt.Errorf("%w: acquire_timeout_ms must be positive", ErrInvalidConfig)
	case c.ShutdownGraceMS <= 0:
		return fmt.Errorf("%w: shutdown_grace_ms must be positive", ErrInvalidConfig)
	}
	return nil
}
