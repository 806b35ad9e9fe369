package env

import (
	"last_queue/internal/config"
	"net"
	"strconv"
)

type httpConfig struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"HTTP_PORT" envDefault:"8080"`
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	var cfg httpConfig
	if err := parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}
