package converter

import (
	"last_queue/internal/api/dto/game"
	"last_queue/internal/config"
	"last_queue/internal/engine"
	"last_queue/internal/model"
	"math"
	"time"
)

func ToStartRun(req game.StartRunRequest) model.StartRun {
	return model.StartRun{
		Seed:       req.Seed,
		SeedPhrase: req.SeedPhrase,
	}
}

func ToChoice(req game.AdvanceRequest) engine.Choice {
	return engine.Choice(req.Choice)
}

// ToRunResponse собирает снимок прохождения с текстами концовки из каталога
func ToRunResponse(v model.RunView, n config.NarrativeConfig) game.RunResponse {
	res := game.RunResponse{
		ID:      v.ID,
		Seed:    v.Seed,
		Attempt: v.Attempt,
		Token:   v.Token,
		Title:   n.Title(),
		Stage:   string(v.Stage),
		Ending:  string(v.Ending),
		Steps:   v.Steps,
	}
	if v.Ending != engine.EndingNone {
		res.EndingTitle, res.Epitaph = n.Ending(string(v.Ending))
	}
	if v.State != nil {
		res.State = toStateResponse(*v.State)
		res.Metrics = toMetricsResponse(engine.ComputeMetrics(v.State.Lambda, v.State.Mu))
	}
	return res
}

func ToAdvanceResponse(r model.AdvanceResult, n config.NarrativeConfig) game.AdvanceResponse {
	return game.AdvanceResponse{
		Run: ToRunResponse(r.Run, n),
		Outcome: game.OutcomeResponse{
			Phase:   string(r.Outcome.Phase),
			Ignored: r.Outcome.Ignored,
			Ending:  string(r.Outcome.Ending),
			Facts:   model.SanitizeFacts(r.Outcome.Facts),
		},
	}
}

func ToStatsResponse(s model.EndingStats, n config.NarrativeConfig) game.StatsResponse {
	res := game.StatsResponse{
		TotalRuns: s.TotalRuns,
		Endings:   make([]game.EndingStatResponse, len(s.ByEnding)),
		Recent:    make([]game.RunRecordResponse, len(s.Recent)),
	}
	for i, st := range s.ByEnding {
		title, _ := n.Ending(string(st.Ending))
		res.Endings[i] = game.EndingStatResponse{
			Ending:    string(st.Ending),
			Title:     title,
			Count:     st.Count,
			AvgRounds: st.AvgRounds,
		}
	}
	for i, rec := range s.Recent {
		res.Recent[i] = game.RunRecordResponse{
			ID:                  rec.ID,
			Attempt:             rec.Attempt,
			Seed:                rec.Seed,
			Ending:              string(rec.Ending),
			Rounds:              rec.Rounds,
			SurvivalProbability: rec.SurvivalProbability,
			Toxicity:            rec.Toxicity,
			FinishedAt:          rec.FinishedAt.UTC().Format(time.RFC3339),
		}
	}
	return res
}

func toStateResponse(st engine.State) *game.StateResponse {
	return &game.StateResponse{
		Round:               st.Round,
		Phase:               string(st.Phase),
		QueueLength:         st.QueueLength,
		Toxicity:            st.Toxicity,
		Lambda:              st.Lambda,
		Mu:                  st.Mu,
		SurvivalProbability: st.SurvivalProbability,
		ChamberPointer:      st.ChamberPointer,
		Alive:               st.Alive,
	}
}

// toMetricsResponse - бесконечная ожидаемая длина очереди уходит в JSON как null
func toMetricsResponse(m engine.Metrics) *game.MetricsResponse {
	res := &game.MetricsResponse{
		Rho:       m.Rho,
		Stability: m.Stability(),
	}
	if !math.IsInf(m.ExpectedQueueLength, 0) && !math.IsNaN(m.ExpectedQueueLength) {
		l := m.ExpectedQueueLength
		res.ExpectedQueueLength = &l
	}
	return res
}
