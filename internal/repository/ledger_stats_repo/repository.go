package ledger_stats_repo

import (
	"context"
	"last_queue/internal/engine"
	"last_queue/internal/model"
	"last_queue/internal/repository"
	repoModel "last_queue/internal/repository/ledger_stats_repo/model"
	"sync"
)

const (
	// windowSize Сколько последних прохождений держим в памяти
	windowSize = 50
	// recentRuns Сколько последних прохождений отдаем в статистике
	recentRuns = 10
)

// StatsRepo - журнал концовок в памяти процесса, когда Postgres не настроен
type StatsRepo struct {
	mtx   sync.RWMutex
	state repoModel.LedgerState
}

// NewLedgerStatsRepository Конструктор с пустым состоянием
func NewLedgerStatsRepository() *StatsRepo {
	return &StatsRepo{
		state: repoModel.LedgerState{
			Endings:    make(map[engine.EndingKind]*repoModel.EndingCounter),
			RunWindow:  make([]model.RunRecord, 0, windowSize),
			WindowSize: windowSize,
		},
	}
}

var _ repository.LedgerRepository = (*StatsRepo)(nil)

// RecordRun Обновление статистики после завершения прохождения
func (r *StatsRepo) RecordRun(_ context.Context, record model.RunRecord, journal []model.JournalEntry) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.TotalRuns++
	r.state.TotalPhases += len(journal)

	c, ok := r.state.Endings[record.Ending]
	if !ok {
		c = &repoModel.EndingCounter{}
		r.state.Endings[record.Ending] = c
	}
	c.Count++
	c.RoundsSum += record.Rounds

	// Поддерживаем размер окна
	r.state.RunWindow = append(r.state.RunWindow, record)
	if len(r.state.RunWindow) > r.state.WindowSize {
		r.state.RunWindow = r.state.RunWindow[1:]
	}
	return nil
}

// Stats Снимок статистики. Концовки в порядке engine.Endings
func (r *StatsRepo) Stats(_ context.Context) (*model.EndingStats, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	stats := &model.EndingStats{TotalRuns: r.state.TotalRuns}
	for _, kind := range engine.Endings {
		c, ok := r.state.Endings[kind]
		if !ok {
			continue
		}
		stats.ByEnding = append(stats.ByEnding, model.EndingStat{
			Ending:    kind,
			Count:     c.Count,
			AvgRounds: float64(c.RoundsSum) / float64(c.Count),
		})
	}

	n := min(recentRuns, len(r.state.RunWindow))
	stats.Recent = make([]model.RunRecord, 0, n)
	for i := len(r.state.RunWindow) - 1; i >= len(r.state.RunWindow)-n; i-- {
		stats.Recent = append(stats.Recent, r.state.RunWindow[i])
	}
	return stats, nil
}

// TotalPhases Сколько фаз записано во всех журналах
func (r *StatsRepo) TotalPhases() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.state.TotalPhases
}
