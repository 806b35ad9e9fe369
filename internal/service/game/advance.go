package game

import (
	"context"
	"fmt"
	"last_queue/internal/engine"
	"last_queue/internal/model"
	"last_queue/internal/service"
)

// Advance выполняет один переход фазы и пишет его в журнал прохождения.
// Проигнорированные действия в журнал не попадают
func (s *serv) Advance(ctx context.Context, choice engine.Choice) (*model.AdvanceResult, error) {
	if !choice.Valid() {
		return nil, fmt.Errorf("%w: %q", service.ErrInvalidChoice, choice)
	}

	run, err := s.runFromContext(ctx)
	if err != nil {
		return nil, err
	}
	run.Lock()
	defer run.Unlock()

	var round int
	if st, ok := run.Controller.State(); ok {
		round = st.Round
	}

	out, err := run.Controller.Advance(choice)
	if err != nil {
		s.log.Error("phase failed", "run_id", run.ID, "round", round, "err", err)
		return nil, fmt.Errorf("advance run %s: %w", run.ID, err)
	}

	if !out.Ignored {
		run.Journal = append(run.Journal, model.JournalEntry{
			Seq:     len(run.Journal) + 1,
			Round:   round,
			Outcome: out,
		})
	}
	if out.Ended() {
		s.log.Info("run ended", "run_id", run.ID, "ending", out.Ending, "round", round, "phase", out.Phase)
		s.recordIfEnded(ctx, run)
	}

	return &model.AdvanceResult{
		Run:     *viewOf(run),
		Outcome: out,
	}, nil
}
