package ledger_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"last_queue/internal/engine"
	"last_queue/internal/model"
	"last_queue/internal/repository"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	runsTable       = "runs"
	runID           = "id"
	runAttempt      = "attempt"
	runSeed         = "seed"
	runEnding       = "ending"
	runRounds       = "rounds"
	runSurvivalProb = "survival_probability"
	runToxicity     = "toxicity"
	runFinishedAt   = "finished_at"
	phasesTable     = "run_phases"
	phaseRunID      = "run_id"
	phaseAttempt    = "attempt"
	phaseSeq        = "seq"
	phaseRound      = "round"
	phaseName       = "phase"
	phaseFacts      = "facts"
	phaseEnding     = "ending"
	recentRunsLimit = 10
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id uuid NOT NULL,
		attempt integer NOT NULL,
		seed bigint NOT NULL,
		ending text NOT NULL,
		rounds integer NOT NULL,
		survival_probability double precision NOT NULL,
		toxicity double precision NOT NULL,
		finished_at timestamptz NOT NULL,
		PRIMARY KEY (id, attempt)
	)`,
	`CREATE TABLE IF NOT EXISTS run_phases (
		run_id uuid NOT NULL,
		attempt integer NOT NULL,
		seq integer NOT NULL,
		round integer NOT NULL,
		phase text NOT NULL,
		facts jsonb NOT NULL,
		ending text,
		PRIMARY KEY (run_id, attempt, seq),
		FOREIGN KEY (run_id, attempt) REFERENCES runs (id, attempt) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS runs_finished_at_idx ON runs (finished_at DESC)`,
}

type repo struct {
	dbc *pgxpool.Pool
}

func NewLedgerRepository(dbc *pgxpool.Pool) repository.LedgerRepository {
	return &repo{
		dbc: dbc,
	}
}

// EnsureSchema создает таблицы журнала, если их нет
func EnsureSchema(ctx context.Context, dbc *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := dbc.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure ledger schema: %w", err)
		}
	}
	return nil
}

// RecordRun - запись итога прохождения и его журнала фаз.
// Внутри txManager.Do обе вставки идут в одной транзакции
func (r *repo) RecordRun(ctx context.Context, record model.RunRecord, journal []model.JournalEntry) error {
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Insert(runsTable).
		Columns(runID, runAttempt, runSeed, runEnding, runRounds, runSurvivalProb, runToxicity, runFinishedAt).
		Values(record.ID, record.Attempt, record.Seed, string(record.Ending), record.Rounds,
			record.SurvivalProbability, record.Toxicity, record.FinishedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}
	if _, err = conn.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if len(journal) == 0 {
		return nil
	}

	phases := sq.Insert(phasesTable).
		Columns(phaseRunID, phaseAttempt, phaseSeq, phaseRound, phaseName, phaseFacts, phaseEnding).
		PlaceholderFormat(sq.Dollar)
	for _, e := range journal {
		facts, err := json.Marshal(model.SanitizeFacts(e.Outcome.Facts))
		if err != nil {
			return fmt.Errorf("marshal facts of step %d: %w", e.Seq, err)
		}
		var ending *string
		if e.Outcome.Ended() {
			s := string(e.Outcome.Ending)
			ending = &s
		}
		phases = phases.Values(record.ID, record.Attempt, e.Seq, e.Round, string(e.Outcome.Phase), facts, ending)
	}

	sqlStr, args, err = phases.ToSql()
	if err != nil {
		return err
	}
	if _, err = conn.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert run phases: %w", err)
	}
	return nil
}

// Stats - распределение концовок и последние прохождения
func (r *repo) Stats(ctx context.Context) (*model.EndingStats, error) {
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select(runEnding, "count(*)", "avg("+runRounds+")::float8").
		From(runsTable).
		GroupBy(runEnding).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query ending stats: %w", err)
	}
	defer rows.Close()

	stats := &model.EndingStats{}
	for rows.Next() {
		var (
			ending string
			count  int64
			avg    float64
		)
		if err := rows.Scan(&ending, &count, &avg); err != nil {
			return nil, err
		}
		stats.TotalRuns += int(count)
		stats.ByEnding = append(stats.ByEnding, model.EndingStat{
			Ending:    engine.EndingKind(ending),
			Count:     int(count),
			AvgRounds: avg,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recent, err := r.recent(ctx)
	if err != nil {
		return nil, err
	}
	stats.Recent = recent

	return stats, nil
}

func (r *repo) recent(ctx context.Context) ([]model.RunRecord, error) {
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select(runID+"::text", runAttempt, runSeed, runEnding, runRounds, runSurvivalProb, runToxicity, runFinishedAt).
		From(runsTable).
		OrderBy(runFinishedAt + " DESC").
		Limit(recentRunsLimit).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var out []model.RunRecord
	for rows.Next() {
		var (
			rec        model.RunRecord
			ending     string
			finishedAt time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.Attempt, &rec.Seed, &ending, &rec.Rounds,
			&rec.SurvivalProbability, &rec.Toxicity, &finishedAt); err != nil {
			return nil, err
		}
		rec.Ending = engine.EndingKind(ending)
		rec.FinishedAt = finishedAt
		out = append(out, rec)
	}
	return out, rows.Err()
}
