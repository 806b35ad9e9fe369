package env

import (
	"fmt"
	"last_queue/internal/config"
)

// Максимальная длина ключа BLAKE2b
const maxPhraseKeyLen = 64

type seedConfig struct {
	Key string `env:"SEED_PHRASE_KEY"`
}

func NewSeedConfig() (config.SeedConfig, error) {
	var cfg seedConfig
	if err := parse(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Key) > maxPhraseKeyLen {
		return nil, fmt.Errorf("seed phrase key longer than %d bytes", maxPhraseKeyLen)
	}
	return &cfg, nil
}

func (cfg *seedConfig) PhraseKey() []byte {
	return []byte(cfg.Key)
}
