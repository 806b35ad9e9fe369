package env

import (
	"fmt"
	"last_queue/internal/config"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type narrativePath struct {
	Path string `env:"NARRATIVE_PATH" envDefault:"config.yaml"`
}

type endingEntry struct {
	Title   string `yaml:"title"`
	Epitaph string `yaml:"epitaph"`
}

type rawNarrative struct {
	Title   string                 `yaml:"title"`
	Endings map[string]endingEntry `yaml:"endings"`
}

type narrativeConfig struct {
	title   string
	endings map[string]endingEntry
}

// NewNarrativeConfig читает путь из NARRATIVE_PATH и загружает каталог концовок
func NewNarrativeConfig() (config.NarrativeConfig, error) {
	var p narrativePath
	if err := parse(&p); err != nil {
		return nil, err
	}
	return NewNarrativeConfigFromYAML(p.Path)
}

// NewNarrativeConfigFromYAML загружает заголовок игры и тексты концовок.
// Ключи endings - виды концовок (ROULETTE_DEATH, ...), у каждой обязателен title.
func NewNarrativeConfigFromYAML(path string) (config.NarrativeConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read narrative file %s: %w", path, err)
	}

	var raw rawNarrative
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse narrative file %s: %w", path, err)
	}
	if len(raw.Endings) == 0 {
		return nil, fmt.Errorf("narrative file %s: endings is empty", path)
	}

	endings := make(map[string]endingEntry, len(raw.Endings))
	for kind, e := range raw.Endings {
		key := strings.ToUpper(strings.TrimSpace(kind))
		if strings.TrimSpace(e.Title) == "" {
			return nil, fmt.Errorf("narrative file %s: ending %s missing title", path, key)
		}
		endings[key] = endingEntry{
			Title:   strings.TrimSpace(e.Title),
			Epitaph: strings.TrimSpace(e.Epitaph),
		}
	}

	return &narrativeConfig{
		title:   strings.TrimSpace(raw.Title),
		endings: endings,
	}, nil
}

func (cfg *narrativeConfig) Title() string {
	return cfg.title
}

// Ending возвращает заголовок и эпитафию. Для неизвестной концовки - сам ключ и пустой текст
func (cfg *narrativeConfig) Ending(kind string) (string, string) {
	e, ok := cfg.endings[kind]
	if !ok {
		return kind, ""
	}
	return e.Title, e.Epitaph
}
