package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// LoadConfig reads the whole application configuration from the process environment.
func LoadConfig(ctx context.Context) (*AppConfig, error) {
	return LoadConfigFrom(ctx, envconfig.OsLookuper())
}

// LoadConfigFrom reads the configuration through the given lookuper, which lets tests
// supply a map instead of mutating the process environment.
func LoadConfigFrom(ctx context.Context, l envconfig.Lookuper) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	cfg.StoreEnvConfig.Backend = strings.ToLower(strings.TrimSpace(cfg.StoreEnvConfig.Backend))
	switch cfg.StoreEnvConfig.Backend {
	case StoreBackendMemory, StoreBackendRedis:
	case StoreBackendRest:
		if cfg.StoreEnvConfig.RestURL == "" {
			return nil, fmt.Errorf("STORE_REST_URL is required when STORE_BACKEND=%s", StoreBackendRest)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreEnvConfig.Backend)
	}

	if cfg.CompletionEnvConfig.MaxRetries < 1 {
		cfg.CompletionEnvConfig.MaxRetries = 1
	}
	return cfg, nil
}
