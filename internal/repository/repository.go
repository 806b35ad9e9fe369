package repository

import (
	"context"
	"errors"
	"last_queue/internal/model"
)

var ErrRunNotFound = errors.New("run not found")

// SessionRepository - живые прохождения в памяти процесса
type SessionRepository interface {
	Create(ctx context.Context, run *model.Run) error
	// Get возвращает прохождение и продлевает его жизнь. Просроченное - ErrRunNotFound
	Get(ctx context.Context, id string) (*model.Run, error)
	Delete(ctx context.Context, id string) error
}

// LedgerRepository - журнал завершенных прохождений
type LedgerRepository interface {
	RecordRun(ctx context.Context, record model.RunRecord, journal []model.JournalEntry) error
	Stats(ctx context.Context) (*model.EndingStats, error)
}
