package env

import "last_queue/internal/config"

type logConfig struct {
	Lvl string `env:"LOG_LEVEL" envDefault:"info"`
	Fmt string `env:"LOG_FORMAT" envDefault:"text"`
}

func NewLogConfig() (config.LogConfig, error) {
	var cfg logConfig
	if err := parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *logConfig) Level() string {
	return cfg.Lvl
}

func (cfg *logConfig) Format() string {
	return cfg.Fmt
}
