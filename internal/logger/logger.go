package logger

import (
	"fmt"
	"io"
	"last_queue/internal/config"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New собирает логгер приложения по LOG_LEVEL и LOG_FORMAT
func New(cfg config.LogConfig) (*log.Logger, error) {
	return newWithWriter(os.Stderr, cfg)
}

func newWithWriter(w io.Writer, cfg config.LogConfig) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(cfg.Level()))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level(), err)
	}

	var formatter log.Formatter
	switch strings.ToLower(cfg.Format()) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format())
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Formatter:       formatter,
	}), nil
}

// Discard - логгер для тестов
func Discard() *log.Logger {
	return log.New(io.Discard)
}
