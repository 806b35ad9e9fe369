package game

import (
	"context"
	"fmt"
	"last_queue/internal/model"
)

// Begin - TUTORIAL → PLAYING. В других стадиях возвращает текущий снимок
func (s *serv) Begin(ctx context.Context) (*model.RunView, error) {
	run, err := s.runFromContext(ctx)
	if err != nil {
		return nil, err
	}
	run.Lock()
	defer run.Unlock()

	ok, err := run.Controller.Begin()
	if err != nil {
		s.log.Error("failed to begin run", "run_id", run.ID, "err", err)
		return nil, fmt.Errorf("begin run %s: %w", run.ID, err)
	}
	if ok {
		s.log.Debug("run begun", "run_id", run.ID, "attempt", run.Attempt)
	}
	return viewOf(run), nil
}
