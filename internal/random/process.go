package random

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrInvalidParameter - распределение запрошено с недопустимым параметром
var ErrInvalidParameter = errors.New("invalid distribution parameter")

// Порог среднего, после которого Пуассон считается через нормальное приближение
const poissonNormalThreshold = 30.0

// Process - единый источник случайности для одного прохождения.
// Все розыгрыши идут через один *rand.Rand, поэтому фиксированный seed
// воспроизводит прохождение целиком.
type Process struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New создает процесс из seed
func New(seed int64) *Process {
	return &Process{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Seed возвращает исходный seed
func (p *Process) Seed() int64 {
	return p.seed
}

// Position - количество розыгрышей с момента создания
func (p *Process) Position() int64 {
	return p.pos
}

// Poisson возвращает целое >= 0 из распределения Пуассона со средним mean.
// mean == 0 дает 0 без расхода случайности.
func (p *Process) Poisson(mean float64) (int, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) || mean < 0 {
		return 0, fmt.Errorf("poisson mean %v: %w", mean, ErrInvalidParameter)
	}
	if mean == 0 {
		return 0, nil
	}
	p.pos++

	if mean > poissonNormalThreshold {
		v := math.Round(mean + math.Sqrt(mean)*p.src.NormFloat64())
		if v < 0 {
			return 0, nil
		}
		return int(v), nil
	}

	// Алгоритм Кнута
	limit := math.Exp(-mean)
	k := 0
	prod := p.src.Float64()
	for prod > limit {
		k++
		prod *= p.src.Float64()
	}
	return k, nil
}

// Exponential возвращает float >= 0 из экспоненциального распределения со средним mean
func (p *Process) Exponential(mean float64) (float64, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) || mean <= 0 {
		return 0, fmt.Errorf("exponential mean %v: %w", mean, ErrInvalidParameter)
	}
	p.pos++
	return p.src.ExpFloat64() * mean, nil
}

// GaussianClamped - нормальное распределение, результат прижимается к floor снизу
func (p *Process) GaussianClamped(mean, stddev, floor float64) (float64, error) {
	if math.IsNaN(mean) || math.IsNaN(stddev) || math.IsNaN(floor) || stddev < 0 {
		return 0, fmt.Errorf("gaussian mean %v stddev %v: %w", mean, stddev, ErrInvalidParameter)
	}
	p.pos++
	v := mean + stddev*p.src.NormFloat64()
	if v < floor {
		v = floor
	}
	return v, nil
}

// UniformInt возвращает целое из [lo, hi] включительно
func (p *Process) UniformInt(lo, hi int) (int, error) {
	if lo > hi {
		return 0, fmt.Errorf("uniform range [%d, %d]: %w", lo, hi, ErrInvalidParameter)
	}
	p.pos++
	return lo + p.src.Intn(hi-lo+1), nil
}

// UniformFloat возвращает float из [0, 1)
func (p *Process) UniformFloat() float64 {
	p.pos++
	return p.src.Float64()
}
