package game

import (
	"context"
	"last_queue/internal/model"
)

// Restart возвращает прохождение в TUTORIAL. Последовательность случайных чисел продолжается
func (s *serv) Restart(ctx context.Context) (*model.RunView, error) {
	run, err := s.runFromContext(ctx)
	if err != nil {
		return nil, err
	}
	run.Lock()
	defer run.Unlock()

	// Повторная попытка записи, если журнал был недоступен при завершении
	s.recordIfEnded(ctx, run)

	run.Controller.Restart()
	run.Journal = nil
	run.Recorded = false
	run.Attempt++

	s.log.Debug("run restarted", "run_id", run.ID, "attempt", run.Attempt)
	return viewOf(run), nil
}
