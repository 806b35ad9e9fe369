package engine

// Stage - внешнее состояние автомата прохождения
type Stage string

const (
	StageTutorial Stage = "TUTORIAL"
	StagePlaying  Stage = "PLAYING"
	StageEnding   Stage = "ENDING"
)

// Controller - автомат TUTORIAL → PLAYING{QUEUE,ROULETTE,POISON,REPORT} → ENDING(kind).
// Владеет состоянием прохождения и единственным источником случайности.
// Не потокобезопасен: один вызывающий на прохождение.
type Controller struct {
	sampler Sampler
	stage   Stage
	state   *State
	ending  EndingKind
}

// NewController создает автомат в стадии TUTORIAL
func NewController(s Sampler) *Controller {
	return &Controller{sampler: s, stage: StageTutorial}
}

// Stage возвращает текущую стадию
func (c *Controller) Stage() Stage {
	return c.stage
}

// Ending возвращает концовку. EndingNone, пока игра не закончена
func (c *Controller) Ending() EndingKind {
	return c.ending
}

// State возвращает копию состояния. false, если игра еще не начиналась
func (c *Controller) State() (State, bool) {
	if c.state == nil {
		return State{}, false
	}
	return *c.state, true
}

// Begin - TUTORIAL → PLAYING, инициализирует состояние.
// В других стадиях ничего не делает и возвращает false.
func (c *Controller) Begin() (bool, error) {
	if c.stage != StageTutorial {
		return false, nil
	}
	st, err := StartGame(c.sampler)
	if err != nil {
		return false, err
	}
	c.state = &st
	c.stage = StagePlaying
	return true, nil
}

// Decline - TUTORIAL → ENDING(VOLUNTARY_EXIT) без инициализации состояния
func (c *Controller) Decline() bool {
	if c.stage != StageTutorial {
		return false
	}
	c.stage = StageEnding
	c.ending = EndingVoluntaryExit
	return true
}

// Advance выполняет текущую фазу. Вне PLAYING действие игнорируется
func (c *Controller) Advance(choice Choice) (Outcome, error) {
	if c.stage != StagePlaying || c.state == nil {
		var phase Phase
		if c.state != nil {
			phase = c.state.Phase
		}
		return ignored(phase), nil
	}

	out, err := AdvancePhase(c.sampler, c.state, choice)
	if err != nil {
		return Outcome{}, err
	}
	if out.Ended() {
		c.stage = StageEnding
		c.ending = out.Ending
	}
	return out, nil
}

// Restart сбрасывает прохождение в TUTORIAL со свежим состоянием.
// Источник случайности продолжает свою последовательность.
func (c *Controller) Restart() {
	c.stage = StageTutorial
	c.state = nil
	c.ending = EndingNone
}
