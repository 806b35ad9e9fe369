package game

import (
	"context"
	"errors"
	"last_queue/internal/config"
	"last_queue/internal/engine"
	"last_queue/internal/middleware"
	"last_queue/internal/model"
	"last_queue/internal/repository"
	"last_queue/internal/service"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/charmbracelet/log"
)

type serv struct {
	sessions  repository.SessionRepository
	ledger    repository.LedgerRepository
	txManager trm.Manager
	tokenCfg  config.TokenConfig
	seedCfg   config.SeedConfig
	log       *log.Logger
	now       func() time.Time
}

// NewGameService создает сервис прохождений
func NewGameService(
	sessions repository.SessionRepository,
	ledger repository.LedgerRepository,
	txManager trm.Manager,
	tokenCfg config.TokenConfig,
	seedCfg config.SeedConfig,
	logger *log.Logger,
) service.GameService {
	return &serv{
		sessions:  sessions,
		ledger:    ledger,
		txManager: txManager,
		tokenCfg:  tokenCfg,
		seedCfg:   seedCfg,
		log:       logger.WithPrefix("game"),
		now:       time.Now,
	}
}

// runFromContext находит прохождение по идентификатору из контекста
func (s *serv) runFromContext(ctx context.Context) (*model.Run, error) {
	runID, ok := middleware.RunIDFromContext(ctx)
	if !ok {
		return nil, service.ErrNoRunInContext
	}

	run, err := s.sessions.Get(ctx, runID)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			return nil, service.ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

// recordIfEnded пишет завершенное прохождение в журнал концовок один раз.
// Ошибка журнала не ломает игру: она логируется, запись повторится при перезапуске
func (s *serv) recordIfEnded(ctx context.Context, run *model.Run) {
	if run.Recorded || run.Controller.Stage() != engine.StageEnding {
		return
	}

	rec := model.RunRecord{
		ID:                  run.ID,
		Attempt:             run.Attempt,
		Seed:                run.Seed,
		Ending:              run.Controller.Ending(),
		SurvivalProbability: 1,
		FinishedAt:          s.now(),
	}
	if st, ok := run.Controller.State(); ok {
		rec.Rounds = st.Round
		rec.SurvivalProbability = st.SurvivalProbability
		rec.Toxicity = st.Toxicity
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.ledger.RecordRun(txCtx, rec, run.Journal)
	})
	if err != nil {
		s.log.Error("failed to record run", "run_id", run.ID, "attempt", run.Attempt, "err", err)
		return
	}
	run.Recorded = true
	s.log.Info("run recorded", "run_id", run.ID, "attempt", run.Attempt, "ending", rec.Ending, "rounds", rec.Rounds)
}

func viewOf(run *model.Run) *model.RunView {
	v := &model.RunView{
		ID:      run.ID,
		Seed:    run.Seed,
		Attempt: run.Attempt,
		Stage:   run.Controller.Stage(),
		Ending:  run.Controller.Ending(),
		Steps:   len(run.Journal),
	}
	if st, ok := run.Controller.State(); ok {
		v.State = &st
	}
	return v
}
