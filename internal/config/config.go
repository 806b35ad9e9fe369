package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type TokenConfig interface {
	RunTokenSecretKey() []byte
	RunTokenDuration() time.Duration
}

type SessionConfig interface {
	IdleTTL() time.Duration
}

type SeedConfig interface {
	PhraseKey() []byte
}

type LogConfig interface {
	Level() string
	Format() string
}

// NarrativeConfig - тексты концовок для слоя отображения
type NarrativeConfig interface {
	Title() string
	Ending(kind string) (title, epitaph string)
}
