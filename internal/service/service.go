package service

import (
	"context"
	"errors"
	"last_queue/internal/engine"
	"last_queue/internal/model"
)

var (
	ErrRunNotFound    = errors.New("run not found")
	ErrNoRunInContext = errors.New("run id not found in context")
	ErrInvalidChoice  = errors.New("invalid choice")
	ErrInvalidSeed    = errors.New("invalid seed phrase")
)

// GameService - прохождения λ: The Last Queue для слоя отображения.
// Все операции, кроме Start и Stats, берут прохождение из контекста (middleware.RunIDFromContext)
type GameService interface {
	Start(ctx context.Context, req model.StartRun) (*model.RunView, error)
	Begin(ctx context.Context) (*model.RunView, error)
	Decline(ctx context.Context) (*model.RunView, error)
	Advance(ctx context.Context, choice engine.Choice) (*model.AdvanceResult, error)
	Restart(ctx context.Context) (*model.RunView, error)
	State(ctx context.Context) (*model.RunView, error)
	Stats(ctx context.Context) (*model.EndingStats, error)
}
