package game

import (
	"context"
	"last_queue/internal/model"
)

func (s *serv) State(ctx context.Context) (*model.RunView, error) {
	run, err := s.runFromContext(ctx)
	if err != nil {
		return nil, err
	}
	run.Lock()
	defer run.Unlock()

	return viewOf(run), nil
}
