package session_repo

import (
	"context"
	"errors"
	"last_queue/internal/model"
	"last_queue/internal/repository"
	"sync"
	"testing"
	"time"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestRepoCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := newRepo(time.Hour, c.now)

	if err := r.Create(ctx, &model.Run{ID: "a"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	run, err := r.Get(ctx, "a")
	if err != nil || run.ID != "a" {
		t.Fatalf("get: %+v %v", run, err)
	}
	if !run.CreatedAt.Equal(c.now()) {
		t.Fatalf("created at not set")
	}

	if err := r.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.Get(ctx, "a"); !errors.Is(err, repository.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
	if err := r.Delete(ctx, "a"); !errors.Is(err, repository.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound on second delete, got %v", err)
	}
}

func TestRepoIdleExpiry(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := newRepo(time.Hour, c.now)

	_ = r.Create(ctx, &model.Run{ID: "active"})
	_ = r.Create(ctx, &model.Run{ID: "idle"})

	c.advance(50 * time.Minute)
	if _, err := r.Get(ctx, "active"); err != nil {
		t.Fatalf("active run should be alive: %v", err)
	}

	c.advance(20 * time.Minute)
	if _, err := r.Get(ctx, "active"); err != nil {
		t.Fatalf("touched run should be alive: %v", err)
	}
	if _, err := r.Get(ctx, "idle"); !errors.Is(err, repository.ErrRunNotFound) {
		t.Fatalf("idle run should expire, got %v", err)
	}

	c.advance(2 * time.Hour)
	_ = r.Create(ctx, &model.Run{ID: "fresh"})
	if r.Len() != 1 {
		t.Fatalf("create should sweep expired runs, have %d", r.Len())
	}
}

func TestRepoConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	r := newRepo(0, time.Now)
	_ = r.Create(ctx, &model.Run{ID: "shared"})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Get(ctx, "shared"); err != nil {
				t.Errorf("get: %v", err)
			}
		}()
	}
	wg.Wait()
}
