package env

import (
	"errors"
	"last_queue/internal/config"
)

type pgConfig struct {
	Dsn string `env:"PG_DSN"`
}

// ErrPGNotConfigured - PG_DSN не задан, леджер работает в памяти
var ErrPGNotConfigured = errors.New("pg dsn not found")

func NewPGConfig() (config.PGConfig, error) {
	var cfg pgConfig
	if err := parse(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Dsn) == 0 {
		return nil, ErrPGNotConfigured
	}

	return &cfg, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.Dsn
}
