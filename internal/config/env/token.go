package env

import (
	"fmt"
	"last_queue/internal/config"
	"time"
)

type tokenConfig struct {
	Secret   string        `env:"RUN_TOKEN_SECRET"`
	Duration time.Duration `env:"RUN_TOKEN_TTL" envDefault:"24h"`
}

func NewTokenConfig() (config.TokenConfig, error) {
	var cfg tokenConfig
	if err := parse(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("run token secret key not found")
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("invalid run token duration: %s", cfg.Duration)
	}

	return &cfg, nil
}

func (cfg *tokenConfig) RunTokenSecretKey() []byte {
	return []byte(cfg.Secret)
}

func (cfg *tokenConfig) RunTokenDuration() time.Duration {
	return cfg.Duration
}
