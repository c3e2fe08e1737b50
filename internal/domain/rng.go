package domain

import (
	"math/rand/v2"
)

// RNG - детерминированный генератор уровня: один сид дает одну и ту же
// последовательность бросков.
type RNG struct {
	r *rand.Rand
}

// NewRNG создает генератор из сида.
func NewRNG(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, Mix(seed)))}
}

// IntN возвращает [0, n). Для n <= 0 возвращает 0.
func (g *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return g.r.IntN(n)
}

// Range возвращает [lo, hi] включительно.
func (g *RNG) Range(lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + g.IntN(hi-lo+1)
}

// Roll бросает n кубиков с die гранями (1d7 == Roll(1, 7)).
func (g *RNG) Roll(n, die int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += g.Range(1, die)
	}
	return total
}

// Mix - финализатор splitmix64, раскладывает близкие сиды по всему диапазону.
func Mix(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}
