package game

import (
	"context"
	"last_queue/internal/model"
)

// Decline - отказ от игры на обучении, концовка VOLUNTARY_EXIT
func (s *serv) Decline(ctx context.Context) (*model.RunView, error) {
	run, err := s.runFromContext(ctx)
	if err != nil {
		return nil, err
	}
	run.Lock()
	defer run.Unlock()

	if run.Controller.Decline() {
		s.recordIfEnded(ctx, run)
	}
	return viewOf(run), nil
}
