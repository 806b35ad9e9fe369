package game

import (
	"context"
	"fmt"
	"last_queue/internal/engine"
	"last_queue/internal/model"
)

// Stats - распределение концовок. В ответе все концовки, включая нулевые
func (s *serv) Stats(ctx context.Context) (*model.EndingStats, error) {
	stats, err := s.ledger.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger stats: %w", err)
	}

	byKind := make(map[engine.EndingKind]model.EndingStat, len(stats.ByEnding))
	for _, st := range stats.ByEnding {
		byKind[st.Ending] = st
	}

	full := make([]model.EndingStat, 0, len(engine.Endings))
	for _, kind := range engine.Endings {
		st, ok := byKind[kind]
		if !ok {
			st = model.EndingStat{Ending: kind}
		}
		full = append(full, st)
	}
	stats.ByEnding = full
	return stats, nil
}
