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
//  2. file (YAML) if TILEBINGO_CONFIG is set
//  3. env (prefix TILEBINGO_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("TILEBINGO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: TILEBINGO_ADDR, TILEBINGO_COOLDOWN_MINUTES, ...
	// Map env keys like TILEBINGO_MOVE_LOG_PATH -> move_log_path (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("TILEBINGO_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "tilebingo_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces basic invariants on a loaded Config.
func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.TilesPath == "":
		return fmt.Errorf("%w: tiles_path must not be empty", ErrInvalidConfig)
	case cfg.TeamsPath == "":
		return fmt.Errorf("%w: teams_path must not be empty", ErrInvalidConfig)
	case cfg.MoveLogPath == "":
		return fmt.Errorf("%w: move_log_path must not be empty", ErrInvalidConfig)
	case cfg.CooldownMinutes <= 0:
		return fmt.Errorf("%w: cooldown_minutes must be positive", ErrInvalidConfig)
	case cfg.CommandQueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.CooldownPolicy)) {
	case "team", "member":
	default:
		return fmt.Errorf("%w: cooldown_policy must be %q or %q", ErrInvalidConfig, "team", "member")
	}
	return nil
}
