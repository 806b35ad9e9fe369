package model

import (
	"last_queue/internal/engine"
	servModel "last_queue/internal/model"
)

// LedgerState - накопленная статистика завершенных прохождений
type LedgerState struct {
	TotalRuns   int // Сколько прохождений завершено
	TotalPhases int // Сколько фаз записано в журналах

	Endings map[engine.EndingKind]*EndingCounter // Счетчики по концовкам

	RunWindow  []servModel.RunRecord // Окно последних прохождений
	WindowSize int                   // Размер окна
}

// EndingCounter - счетчик одной концовки
type EndingCounter struct {
	Count     int
	RoundsSum int
}
