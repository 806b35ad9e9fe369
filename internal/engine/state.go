package engine

// Phase - фаза раунда
type Phase string

const (
	PhaseQueue    Phase = "QUEUE"
	PhaseRoulette Phase = "ROULETTE"
	PhasePoison   Phase = "POISON"
	PhaseReport   Phase = "REPORT"
)

// next возвращает следующую фазу цикла QUEUE→ROULETTE→POISON→REPORT→QUEUE
func (p Phase) next() Phase {
	switch p {
	case PhaseQueue:
		return PhaseRoulette
	case PhaseRoulette:
		return PhasePoison
	case PhasePoison:
		return PhaseReport
	default:
		return PhaseQueue
	}
}

// EndingKind - вид концовки. Пустая строка - концовки нет
type EndingKind string

const (
	EndingNone          EndingKind = ""
	EndingRouletteDeath EndingKind = "ROULETTE_DEATH"
	EndingToxicDeath    EndingKind = "TOXIC_DEATH"
	EndingQueueCollapse EndingKind = "QUEUE_COLLAPSE"
	EndingEscape        EndingKind = "ESCAPE"
	EndingSecret        EndingKind = "SECRET"
	EndingVoluntaryExit EndingKind = "VOLUNTARY_EXIT"
)

// Endings - все концовки
var Endings = []EndingKind{
	EndingRouletteDeath,
	EndingToxicDeath,
	EndingQueueCollapse,
	EndingEscape,
	EndingSecret,
	EndingVoluntaryExit,
}

// Choice - выбор игрока. Пустая строка - без выбора
type Choice string

const (
	ChoiceNone     Choice = ""
	ChoiceSpin     Choice = "SPIN"
	ChoiceNoSpin   Choice = "NO_SPIN"
	ChoiceContinue Choice = "CONTINUE"
	ChoiceQuit     Choice = "QUIT"
)

// Valid - известен ли выбор
func (c Choice) Valid() bool {
	switch c {
	case ChoiceNone, ChoiceSpin, ChoiceNoSpin, ChoiceContinue, ChoiceQuit:
		return true
	}
	return false
}

// State - состояние одного прохождения
type State struct {
	Round               int
	Phase               Phase
	QueueLength         int
	Toxicity            float64
	Lambda              float64
	Mu                  float64
	SurvivalProbability float64
	BulletPosition      int
	ChamberPointer      int
	Alive               bool
	Ending              EndingKind
}

// end переводит состояние в терминальное. Фаза замораживается
func (s *State) end(kind EndingKind) {
	s.Alive = false
	s.Ending = kind
}

// Facts - нарративные факты фазы для слоя отображения
type Facts map[string]any

// Ключи фактов
const (
	FactArrivals            = "arrivals"
	FactServiceCapacity     = "service_capacity"
	FactServicesProcessed   = "services_processed"
	FactServiceTime         = "service_time"
	FactQueueLength         = "queue_length"
	FactLambda              = "lambda"
	FactMu                  = "mu"
	FactWaitProbability     = "wait_probability"
	FactChoice              = "choice"
	FactChamber             = "chamber"
	FactSurvived            = "survived"
	FactSurvivalProbability = "survival_probability"
	FactDrops               = "drops"
	FactToxicityDelta       = "toxicity_delta"
	FactAntidote            = "antidote"
	FactReduction           = "reduction"
	FactToxicity            = "toxicity"
	FactRound               = "round"
	FactRho                 = "rho"
	FactExpectedQueueLength = "expected_queue_length"
	FactStability           = "stability"
	FactAwaitingChoice      = "awaiting_choice"
)

// Outcome - результат одного перехода
type Outcome struct {
	Phase   Phase // фаза, которая выполнялась
	Facts   Facts
	Ending  EndingKind
	Ignored bool // действие не подходит к текущей фазе, состояние не менялось
}

// Ended - сработала ли концовка
func (o Outcome) Ended() bool {
	return o.Ending != EndingNone
}

func ignored(phase Phase) Outcome {
	return Outcome{Phase: phase, Facts: Facts{}, Ignored: true}
}
