package engine

import "errors"

// scriptedSampler отдает заранее заданные значения по очереди для каждого вида розыгрыша.
// Когда очередь пуста: Poisson → 0, Gaussian → mean (с учетом floor),
// UniformInt → lo, UniformFloat → 0.99, Exponential → mean.
type scriptedSampler struct {
	poissons  []int
	gaussians []float64
	ints      []int
	floats    []float64
	exps      []float64

	failPoisson bool
	calls       int
}

var errScripted = errors.New("scripted failure")

func (s *scriptedSampler) Poisson(mean float64) (int, error) {
	s.calls++
	if s.failPoisson {
		return 0, errScripted
	}
	if len(s.poissons) == 0 {
		return 0, nil
	}
	v := s.poissons[0]
	s.poissons = s.poissons[1:]
	return v, nil
}

func (s *scriptedSampler) Exponential(mean float64) (float64, error) {
	s.calls++
	if len(s.exps) == 0 {
		return mean, nil
	}
	v := s.exps[0]
	s.exps = s.exps[1:]
	return v, nil
}

func (s *scriptedSampler) GaussianClamped(mean, stddev, floor float64) (float64, error) {
	s.calls++
	v := mean
	if len(s.gaussians) > 0 {
		v = s.gaussians[0]
		s.gaussians = s.gaussians[1:]
	}
	if v < floor {
		v = floor
	}
	return v, nil
}

func (s *scriptedSampler) UniformInt(lo, hi int) (int, error) {
	s.calls++
	if len(s.ints) == 0 {
		return lo, nil
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v, nil
}

func (s *scriptedSampler) UniformFloat() float64 {
	s.calls++
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// playingState - состояние середины игры для точечных тестов фаз
func playingState(phase Phase) State {
	return State{
		Round:               1,
		Phase:               phase,
		QueueLength:         2,
		Toxicity:            15,
		Lambda:              1.0,
		Mu:                  2.5,
		SurvivalProbability: 1,
		BulletPosition:      3,
		ChamberPointer:      1,
		Alive:               true,
	}
}
