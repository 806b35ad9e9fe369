package model

import (
	"last_queue/internal/engine"
	"math"
	"sync"
	"time"
)

// StartRun - параметры нового прохождения. Seed важнее SeedPhrase
type StartRun struct {
	Seed       *int64
	SeedPhrase string
}

// JournalEntry - запись журнала прохождения
type JournalEntry struct {
	Seq     int
	Round   int
	Outcome engine.Outcome
}

// Run - живое прохождение. Хранится только в памяти процесса
type Run struct {
	sync.Mutex

	ID         string
	Seed       int64
	Attempt    int // номер попытки, растет при каждом перезапуске
	Controller *engine.Controller
	Journal    []JournalEntry
	Recorded   bool // прохождение уже записано в журнал концовок
	CreatedAt  time.Time
	TouchedAt  time.Time
}

// RunView - снимок прохождения для слоя отображения
type RunView struct {
	ID      string
	Seed    int64
	Attempt int
	Token   string
	Stage   engine.Stage
	Ending  engine.EndingKind
	State   *engine.State
	Steps   int
}

// AdvanceResult - результат одного действия
type AdvanceResult struct {
	Run     RunView
	Outcome engine.Outcome
}

// RunRecord - итог завершенного прохождения
type RunRecord struct {
	ID                  string
	Attempt             int
	Seed                int64
	Ending              engine.EndingKind
	Rounds              int
	SurvivalProbability float64
	Toxicity            float64
	FinishedAt          time.Time
}

// EndingStat - статистика одной концовки
type EndingStat struct {
	Ending    engine.EndingKind
	Count     int
	AvgRounds float64
}

// EndingStats - распределение концовок по журналу
type EndingStats struct {
	TotalRuns int
	ByEnding  []EndingStat
	Recent    []RunRecord // последние завершенные, новые первыми
}

// SanitizeFacts заменяет бесконечности и NaN на nil, чтобы факты кодировались в JSON
func SanitizeFacts(facts engine.Facts) map[string]any {
	out := make(map[string]any, len(facts))
	for k, v := range facts {
		if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			out[k] = nil
			continue
		}
		out[k] = v
	}
	return out
}
