package game

import (
	"context"
	"errors"
	"last_queue/internal/engine"
	"last_queue/internal/logger"
	"last_queue/internal/middleware"
	"last_queue/internal/model"
	"last_queue/internal/repository/session_repo"
	"last_queue/internal/service"
	"last_queue/pkg/token"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type mockLedger struct {
	mu      sync.Mutex
	records []model.RunRecord
	phases  [][]model.JournalEntry
	fail    error
	stats   *model.EndingStats
}

func (m *mockLedger) RecordRun(_ context.Context, rec model.RunRecord, journal []model.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.records = append(m.records, rec)
	m.phases = append(m.phases, append([]model.JournalEntry(nil), journal...))
	return nil
}

func (m *mockLedger) Stats(context.Context) (*model.EndingStats, error) {
	if m.stats != nil {
		return m.stats, nil
	}
	return &model.EndingStats{}, nil
}

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func (m *mockTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

type tokenCfg struct{}

func (tokenCfg) RunTokenSecretKey() []byte       { return []byte("test-secret") }
func (tokenCfg) RunTokenDuration() time.Duration { return time.Hour }

type seedCfg struct{}

func (seedCfg) PhraseKey() []byte { return []byte("phrase-key") }

func newTestService(ledger *mockLedger, tx *mockTxManager) *serv {
	return NewGameService(
		session_repo.NewSessionRepository(time.Hour),
		ledger,
		tx,
		tokenCfg{},
		seedCfg{},
		logger.Discard(),
	).(*serv)
}

func seedPtr(v int64) *int64 { return &v }

// start создает прохождение и возвращает контекст с его идентификатором
func start(t *testing.T, s *serv, seed int64) (context.Context, *model.RunView) {
	t.Helper()
	view, err := s.Start(context.Background(), model.StartRun{Seed: seedPtr(seed)})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return middleware.WithRunID(context.Background(), view.ID), view
}

// playToEnd проигрывает прохождение до концовки: всегда SPIN и CONTINUE
func playToEnd(t *testing.T, s *serv, ctx context.Context) []engine.Outcome {
	t.Helper()
	if _, err := s.Begin(ctx); err != nil {
		t.Fatalf("begin: %v", err)
	}
	var outs []engine.Outcome
	for i := 0; i < 1000; i++ {
		view, err := s.State(ctx)
		if err != nil {
			t.Fatalf("state: %v", err)
		}
		if view.Stage == engine.StageEnding {
			return outs
		}
		choice := engine.ChoiceNone
		switch view.State.Phase {
		case engine.PhaseRoulette:
			choice = engine.ChoiceSpin
		case engine.PhaseReport:
			choice = engine.ChoiceContinue
		}
		res, err := s.Advance(ctx, choice)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		outs = append(outs, res.Outcome)
	}
	t.Fatalf("run did not end")
	return nil
}

func TestStart(t *testing.T) {
	s := newTestService(&mockLedger{}, &mockTxManager{})
	_, view := start(t, s, 99)

	if view.Stage != engine.StageTutorial || view.State != nil || view.Seed != 99 || view.Attempt != 1 {
		t.Fatalf("unexpected view %+v", view)
	}
	claims, err := token.VerifyRunToken(view.Token, tokenCfg{}.RunTokenSecretKey())
	if err != nil || claims.RunID() != view.ID {
		t.Fatalf("token must carry run id: %v %v", claims, err)
	}
}

func TestStartSeedPhrase(t *testing.T) {
	s := newTestService(&mockLedger{}, &mockTxManager{})
	a, err := s.Start(context.Background(), model.StartRun{SeedPhrase: "Little's Law"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	b, err := s.Start(context.Background(), model.StartRun{SeedPhrase: "  little's law "})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if a.Seed != b.Seed || a.ID == b.ID {
		t.Fatalf("same phrase must give the same seed in distinct runs: %+v %+v", a, b)
	}
	c, err := s.Start(context.Background(), model.StartRun{Seed: seedPtr(5), SeedPhrase: "ignored"})
	if err != nil || c.Seed != 5 {
		t.Fatalf("explicit seed must win: %+v %v", c, err)
	}
	if _, err := s.Start(context.Background(), model.StartRun{SeedPhrase: "   "}); !errors.Is(err, service.ErrInvalidSeed) {
		t.Fatalf("blank phrase must be rejected, got %v", err)
	}
}

func TestRunLookupErrors(t *testing.T) {
	s := newTestService(&mockLedger{}, &mockTxManager{})

	if _, err := s.State(context.Background()); !errors.Is(err, service.ErrNoRunInContext) {
		t.Fatalf("expected ErrNoRunInContext, got %v", err)
	}
	ctx := middleware.WithRunID(context.Background(), "missing")
	if _, err := s.Begin(ctx); !errors.Is(err, service.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := s.Advance(ctx, engine.Choice("DANCE")); !errors.Is(err, service.ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice, got %v", err)
	}
}

func TestDeclineRecordsVoluntaryExit(t *testing.T) {
	ledger := &mockLedger{}
	s := newTestService(ledger, &mockTxManager{})
	ctx, view := start(t, s, 1)

	got, err := s.Decline(ctx)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if got.Stage != engine.StageEnding || got.Ending != engine.EndingVoluntaryExit || got.State != nil {
		t.Fatalf("unexpected view %+v", got)
	}
	if len(ledger.records) != 1 {
		t.Fatalf("expected one record, got %d", len(ledger.records))
	}
	rec := ledger.records[0]
	if rec.ID != view.ID || rec.Rounds != 0 || rec.SurvivalProbability != 1 || rec.Ending != engine.EndingVoluntaryExit {
		t.Fatalf("unexpected record %+v", rec)
	}

	if _, err := s.Decline(ctx); err != nil {
		t.Fatalf("second decline: %v", err)
	}
	if len(ledger.records) != 1 {
		t.Fatalf("decline in ENDING must not record again")
	}
}

func TestAdvanceRecordsEndingOnce(t *testing.T) {
	ledger := &mockLedger{}
	tx := &mockTxManager{}
	s := newTestService(ledger, tx)
	ctx, _ := start(t, s, 7)

	outs := playToEnd(t, s, ctx)
	last := outs[len(outs)-1]
	if !last.Ended() {
		t.Fatalf("last outcome must carry the ending: %+v", last)
	}
	if len(ledger.records) != 1 || tx.calls != 1 {
		t.Fatalf("expected one record in one transaction, got %d/%d", len(ledger.records), tx.calls)
	}
	if ledger.records[0].Ending != last.Ending {
		t.Fatalf("record ending %s, outcome ending %s", ledger.records[0].Ending, last.Ending)
	}

	journal := ledger.phases[0]
	if len(journal) != len(outs) {
		t.Fatalf("journal has %d entries, played %d", len(journal), len(outs))
	}
	for i, e := range journal {
		if e.Seq != i+1 || e.Outcome.Phase != outs[i].Phase {
			t.Fatalf("journal entry %d out of order: %+v", i, e)
		}
	}

	res, err := s.Advance(ctx, engine.ChoiceNone)
	if err != nil || !res.Outcome.Ignored {
		t.Fatalf("advance after ending must be ignored: %+v %v", res, err)
	}
	if len(ledger.records) != 1 {
		t.Fatalf("ending must be recorded once")
	}
}

func TestAdvanceIgnoredNotJournaled(t *testing.T) {
	s := newTestService(&mockLedger{}, &mockTxManager{})
	ctx, _ := start(t, s, 3)

	res, err := s.Advance(ctx, engine.ChoiceNone)
	if err != nil || !res.Outcome.Ignored {
		t.Fatalf("advance in TUTORIAL must be ignored: %+v %v", res, err)
	}
	if _, err := s.Begin(ctx); err != nil {
		t.Fatalf("begin: %v", err)
	}
	res, err = s.Advance(ctx, engine.ChoiceSpin)
	if err != nil || !res.Outcome.Ignored {
		t.Fatalf("SPIN in QUEUE must be ignored: %+v %v", res, err)
	}
	if res.Run.Steps != 0 {
		t.Fatalf("ignored actions must not be journaled, steps=%d", res.Run.Steps)
	}
}

func TestSameSeedSameJournal(t *testing.T) {
	s := newTestService(&mockLedger{}, &mockTxManager{})
	ctxA, _ := start(t, s, 2024)
	ctxB, _ := start(t, s, 2024)

	a := playToEnd(t, s, ctxA)
	b := playToEnd(t, s, ctxB)
	if len(a) != len(b) {
		t.Fatalf("journals differ in length %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Phase != b[i].Phase || a[i].Ending != b[i].Ending || len(a[i].Facts) != len(b[i].Facts) {
			t.Fatalf("step %d differs: %+v vs %+v", i, a[i], b[i])
		}
		for k, v := range a[i].Facts {
			if b[i].Facts[k] != v {
				t.Fatalf("step %d fact %s differs: %v vs %v", i, k, v, b[i].Facts[k])
			}
		}
	}
}

func TestLedgerFailureRetriedOnRestart(t *testing.T) {
	ledger := &mockLedger{fail: errors.New("db down")}
	s := newTestService(ledger, &mockTxManager{})
	ctx, _ := start(t, s, 1)

	if _, err := s.Decline(ctx); err != nil {
		t.Fatalf("ledger failure must not fail the game: %v", err)
	}
	if len(ledger.records) != 0 {
		t.Fatalf("nothing should be recorded")
	}

	ledger.fail = nil
	view, err := s.Restart(ctx)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if len(ledger.records) != 1 || ledger.records[0].Attempt != 1 {
		t.Fatalf("restart should record the finished attempt: %+v", ledger.records)
	}
	if view.Stage != engine.StageTutorial || view.Attempt != 2 || view.Steps != 0 || view.State != nil {
		t.Fatalf("unexpected view after restart %+v", view)
	}
}

func TestRestartContinuesStream(t *testing.T) {
	s := newTestService(&mockLedger{}, &mockTxManager{})
	ctx, _ := start(t, s, 11)

	first, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := s.Restart(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	second, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if *first.State == *second.State {
		t.Fatalf("restart must continue the random stream, got identical initial states")
	}
}

func TestStatsListsAllEndings(t *testing.T) {
	ledger := &mockLedger{stats: &model.EndingStats{
		TotalRuns: 3,
		ByEnding: []model.EndingStat{
			{Ending: engine.EndingEscape, Count: 1, AvgRounds: 10},
			{Ending: engine.EndingRouletteDeath, Count: 2, AvgRounds: 1.5},
		},
	}}
	s := newTestService(ledger, &mockTxManager{})

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats.ByEnding) != len(engine.Endings) {
		t.Fatalf("expected %d endings, got %d", len(engine.Endings), len(stats.ByEnding))
	}
	for i, kind := range engine.Endings {
		if stats.ByEnding[i].Ending != kind {
			t.Fatalf("position %d: expected %s, got %s", i, kind, stats.ByEnding[i].Ending)
		}
	}
	if stats.ByEnding[0].Count != 2 || stats.ByEnding[3].Count != 1 || stats.ByEnding[4].Count != 0 {
		t.Fatalf("unexpected counts %+v", stats.ByEnding)
	}
}
