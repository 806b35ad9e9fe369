package env

import (
	"fmt"
	"last_queue/internal/config"
	"time"
)

type sessionConfig struct {
	TTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"2h"`
}

func NewSessionConfig() (config.SessionConfig, error) {
	var cfg sessionConfig
	if err := parse(&cfg); err != nil {
		return nil, err
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("invalid session idle ttl: %s", cfg.TTL)
	}
	return &cfg, nil
}

func (cfg *sessionConfig) IdleTTL() time.Duration {
	return cfg.TTL
}
