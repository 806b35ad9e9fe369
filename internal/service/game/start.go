package game

import (
	"context"
	"fmt"
	"last_queue/internal/engine"
	"last_queue/internal/model"
	"last_queue/internal/random"
	"last_queue/internal/service"
	"last_queue/pkg/token"

	"github.com/google/uuid"
)

// Start создает прохождение в стадии TUTORIAL и выдает токен прохождения.
// Зерно: явное, иначе из фразы, иначе случайное
func (s *serv) Start(ctx context.Context, req model.StartRun) (*model.RunView, error) {
	seed, err := s.resolveSeed(req)
	if err != nil {
		return nil, err
	}

	run := &model.Run{
		ID:         uuid.NewString(),
		Seed:       seed,
		Attempt:    1,
		Controller: engine.NewController(random.New(seed)),
		CreatedAt:  s.now(),
	}
	if err := s.sessions.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	runToken, err := token.GenerateRunToken(run.ID, s.tokenCfg.RunTokenSecretKey(), s.tokenCfg.RunTokenDuration())
	if err != nil {
		return nil, fmt.Errorf("sign run token: %w", err)
	}

	s.log.Info("run started", "run_id", run.ID, "seed", seed)

	view := viewOf(run)
	view.Token = runToken
	return view, nil
}

func (s *serv) resolveSeed(req model.StartRun) (int64, error) {
	if req.Seed != nil {
		return *req.Seed, nil
	}
	if req.SeedPhrase != "" {
		seed, err := random.SeedFromPhrase(req.SeedPhrase, s.seedCfg.PhraseKey())
		if err != nil {
			return 0, fmt.Errorf("%w: %v", service.ErrInvalidSeed, err)
		}
		return seed, nil
	}
	return random.NewSeed()
}
