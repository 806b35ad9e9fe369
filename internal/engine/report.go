package engine

import "math"

// Metrics - производные показатели раунда (M/M/1)
type Metrics struct {
	Rho                 float64
	ExpectedQueueLength float64 // +Inf при rho >= 1
	Stable              bool
}

// Stability - текстовая метка устойчивости
func (m Metrics) Stability() string {
	if m.Stable {
		return "Stable"
	}
	return "Collapsed"
}

// ComputeMetrics считает загрузку и ожидаемую длину очереди
func ComputeMetrics(lambda, mu float64) Metrics {
	rho := lambda / mu
	if rho < 1 {
		return Metrics{Rho: rho, ExpectedQueueLength: rho * rho / (1 - rho), Stable: true}
	}
	return Metrics{Rho: rho, ExpectedQueueLength: math.Inf(1)}
}

// checkReportEnding - проверки концовок отчета, первое совпадение выигрывает
func checkReportEnding(st *State, m Metrics) EndingKind {
	if st.Round >= escapeRound && m.Rho < 1 && st.Toxicity < escapeToxicity {
		return EndingEscape
	}
	if st.Round >= secretRound && st.SurvivalProbability >= secretSurvival {
		return EndingSecret
	}
	return EndingNone
}

// runReport - итог раунда. Метрики и проверки концовок не тратят случайность.
// Без выбора возвращается сводка и фаза остается REPORT.
// CONTINUE начинает следующий раунд, QUIT завершает игру.
func runReport(s Sampler, st *State, choice Choice) (Outcome, error) {
	m := ComputeMetrics(st.Lambda, st.Mu)
	out := Outcome{Facts: Facts{
		FactRound:               st.Round,
		FactRho:                 m.Rho,
		FactExpectedQueueLength: m.ExpectedQueueLength,
		FactStability:           m.Stability(),
		FactQueueLength:         st.QueueLength,
		FactToxicity:            st.Toxicity,
		FactSurvivalProbability: st.SurvivalProbability,
	}}

	if ending := checkReportEnding(st, m); ending != EndingNone {
		out.Ending = ending
		return out, nil
	}

	switch choice {
	case ChoiceContinue:
		nudge := lambdaNudgeMin + lambdaNudgeSpan*s.UniformFloat()
		st.Lambda = math.Min(st.Lambda+nudge, math.Max(st.Lambda, lambdaNudgeCeiling))
		st.Round++
		st.Phase = PhaseQueue
		out.Facts[FactChoice] = string(choice)
		out.Facts[FactLambda] = st.Lambda
	case ChoiceQuit:
		out.Facts[FactChoice] = string(choice)
		out.Ending = EndingVoluntaryExit
	default:
		out.Facts[FactAwaitingChoice] = true
	}
	return out, nil
}
