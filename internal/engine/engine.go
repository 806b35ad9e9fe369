package engine

import "math"

// Sampler - источник розыгрышей. *random.Process удовлетворяет интерфейсу
type Sampler interface {
	Poisson(mean float64) (int, error)
	Exponential(mean float64) (float64, error)
	GaussianClamped(mean, stddev, floor float64) (float64, error)
	UniformInt(lo, hi int) (int, error)
	UniformFloat() float64
}

const (
	// Начальное состояние
	startToxicity    = 15.0
	startQueueLength = 2
	startLambdaMean  = 1.0
	startLambdaSD    = 0.25
	startMuMean      = 2.4
	startMuSD        = 0.3

	// Дрейф и нижние границы ставок
	lambdaDriftSD = 0.08
	muDriftSD     = 0.10
	lambdaFloor   = 0.2
	muFloor       = 0.5

	// Очередь
	queueCollapseLength = 12

	// Рулетка
	chambers        = 6
	pullSurvival    = 5.0 / 6.0
	pullToxicRelief = 10.0

	// Яд
	leakRate        = 0.45
	toxicityPerDrop = 8.0
	antidoteChance  = 0.18
	antidoteMin     = 5
	antidoteMax     = 15

	// Токсичность
	toxicityMin = 0.0
	toxicityMax = 100.0

	// Отчет и концовки
	escapeRound        = 10
	escapeToxicity     = 80.0
	secretRound        = 20
	secretSurvival     = 0.9
	lambdaNudgeMin     = 0.02
	lambdaNudgeSpan    = 0.10
	lambdaNudgeCeiling = 2.0
)

// StartGame создает новое прохождение: λ и μ из усеченных нормальных,
// пуля и указатель барабана равномерно из 1..6
func StartGame(s Sampler) (State, error) {
	lambda, err := s.GaussianClamped(startLambdaMean, startLambdaSD, lambdaFloor)
	if err != nil {
		return State{}, err
	}
	mu, err := s.GaussianClamped(startMuMean, startMuSD, muFloor)
	if err != nil {
		return State{}, err
	}
	bullet, err := s.UniformInt(1, chambers)
	if err != nil {
		return State{}, err
	}
	pointer, err := s.UniformInt(1, chambers)
	if err != nil {
		return State{}, err
	}

	return State{
		Round:               1,
		Phase:               PhaseQueue,
		QueueLength:         startQueueLength,
		Toxicity:            startToxicity,
		Lambda:              lambda,
		Mu:                  mu,
		SurvivalProbability: 1,
		BulletPosition:      bullet,
		ChamberPointer:      pointer,
		Alive:               true,
	}, nil
}

// AdvancePhase выполняет текущую фазу.
// Фаза работает над копией состояния: при ошибке розыгрыша st не меняется.
// Действия, не подходящие к фазе, игнорируются (Outcome.Ignored).
func AdvancePhase(s Sampler, st *State, choice Choice) (Outcome, error) {
	if !st.Alive || st.Ending != EndingNone {
		return ignored(st.Phase), nil
	}

	next := *st
	var (
		out Outcome
		err error
	)
	switch st.Phase {
	case PhaseQueue:
		if choice != ChoiceNone {
			return ignored(st.Phase), nil
		}
		out, err = runQueue(s, &next)
	case PhaseRoulette:
		if choice != ChoiceSpin && choice != ChoiceNoSpin {
			return ignored(st.Phase), nil
		}
		out, err = runRoulette(s, &next, choice)
	case PhasePoison:
		if choice != ChoiceNone {
			return ignored(st.Phase), nil
		}
		out, err = runPoison(s, &next)
	case PhaseReport:
		if choice != ChoiceNone && choice != ChoiceContinue && choice != ChoiceQuit {
			return ignored(st.Phase), nil
		}
		out, err = runReport(s, &next, choice)
	default:
		return ignored(st.Phase), nil
	}
	if err != nil {
		return Outcome{}, err
	}

	out.Phase = st.Phase
	if out.Ending != EndingNone {
		next.end(out.Ending)
	}
	*st = next
	return out, nil
}

func clampToxicity(v float64) float64 {
	return math.Max(toxicityMin, math.Min(toxicityMax, v))
}
