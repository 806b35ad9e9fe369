package session_repo

import (
	"context"
	"last_queue/internal/model"
	"last_queue/internal/repository"
	"sync"
	"time"
)

type repo struct {
	mtx     sync.RWMutex
	runs    map[string]*model.Run
	idleTTL time.Duration
	now     func() time.Time
}

// NewSessionRepository создает хранилище живых прохождений.
// Прохождение, к которому не обращались дольше idleTTL, удаляется при следующем обращении
func NewSessionRepository(idleTTL time.Duration) repository.SessionRepository {
	return newRepo(idleTTL, time.Now)
}

func newRepo(idleTTL time.Duration, now func() time.Time) *repo {
	return &repo{
		runs:    make(map[string]*model.Run),
		idleTTL: idleTTL,
		now:     now,
	}
}

// Create сохраняет прохождение и заодно чистит просроченные
func (r *repo) Create(_ context.Context, run *model.Run) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	now := r.now()
	for id, existing := range r.runs {
		if r.expired(existing, now) {
			delete(r.runs, id)
		}
	}

	run.TouchedAt = now
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	r.runs[run.ID] = run
	return nil
}

func (r *repo) Get(_ context.Context, id string) (*model.Run, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, repository.ErrRunNotFound
	}
	now := r.now()
	if r.expired(run, now) {
		delete(r.runs, id)
		return nil, repository.ErrRunNotFound
	}
	run.TouchedAt = now
	return run, nil
}

func (r *repo) Delete(_ context.Context, id string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.runs[id]; !ok {
		return repository.ErrRunNotFound
	}
	delete(r.runs, id)
	return nil
}

// Len - количество хранимых прохождений, включая еще не вычищенные
func (r *repo) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.runs)
}

func (r *repo) expired(run *model.Run, now time.Time) bool {
	return r.idleTTL > 0 && now.Sub(run.TouchedAt) > r.idleTTL
}
