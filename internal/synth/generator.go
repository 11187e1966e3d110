// Package synth builds reproducible pseudo-random interaction records for pairs missing from the fixed table.
package synth

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Generator is a seeded source of draws. Two generators built from the same seed
// produce the same sequence.
type Generator interface {
	// IntN returns a uniform integer in [lo, hi).
	IntN(lo, hi int) int
	// Uniform returns a uniform float in [lo, hi).
	Uniform(lo, hi float64) float64
	// Bernoulli returns true with probability p.
	Bernoulli(p float64) bool
}

// GeneratorFactory builds a Generator for a seed.
type GeneratorFactory func(seed uint64) Generator

// pcgGenerator draws from a PCG source through gonum distributions.
type pcgGenerator struct {
	src rand.Source
	rng *rand.Rand
}

// NewGenerator returns a PCG-backed Generator for seed.
func NewGenerator(seed uint64) Generator {
	src := rand.NewPCG(seed, seed)
	return &pcgGenerator{src: src, rng: rand.New(src)}
}

func (g *pcgGenerator) IntN(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo)
}

func (g *pcgGenerator) Uniform(lo, hi float64) float64 {
	return distuv.Uniform{Min: lo, Max: hi, Src: g.src}.Rand()
}

func (g *pcgGenerator) Bernoulli(p float64) bool {
	return distuv.Bernoulli{P: p, Src: g.src}.Rand() == 1
}
