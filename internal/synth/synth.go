package synth

import (
	"github.com/hyperjump/fsaptvis/internal/models"
	"github.com/hyperjump/fsaptvis/internal/pairkey"
)

// Distribution parameters for synthesized records. Ranges are half-open [min, max).
const (
	MinInteractions = 8
	MaxInteractions = 15

	MinAtomIndex = 1
	MaxAtomIndex = 300

	AttractiveProbability = 0.7

	AttractiveMin = -4.0
	AttractiveMax = -0.5
	RepulsiveMin  = 0.5
	RepulsiveMax  = 2.5

	// LigandFraction is the denominator of the positional ligand/protein split.
	LigandFraction = 3

	MixedType = "mixed"
)

// Synthesizer builds records for unknown pairs.
type Synthesizer struct {
	newGenerator GeneratorFactory
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithGeneratorFactory replaces the default PCG generator.
func WithGeneratorFactory(f GeneratorFactory) Option {
	return func(s *Synthesizer) { s.newGenerator = f }
}

// New returns a Synthesizer using NewGenerator unless overridden.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{newGenerator: NewGenerator}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize returns a fresh record for the pair. The same pair always yields the same record.
func (s *Synthesizer) Synthesize(ligandID, proteinID string) *models.InteractionRecord {
	gen := s.newGenerator(pairkey.Seed(pairkey.Key(ligandID, proteinID)))

	n := gen.IntN(MinInteractions, MaxInteractions)
	atoms := make([]int, n)
	for i := range atoms {
		atoms[i] = gen.IntN(MinAtomIndex, MaxAtomIndex)
	}

	energies := make([]float64, n)
	var total float64
	for i := range energies {
		if gen.Bernoulli(AttractiveProbability) {
			energies[i] = gen.Uniform(AttractiveMin, AttractiveMax)
		} else {
			energies[i] = gen.Uniform(RepulsiveMin, RepulsiveMax)
		}
		total += energies[i]
	}

	split := n / LigandFraction
	ligand := make([]int, split)
	copy(ligand, atoms[:split])
	protein := make([]int, n-split)
	copy(protein, atoms[split:])

	return &models.InteractionRecord{
		AtomIndices:            atoms,
		EnergyContributions:    energies,
		InteractionType:        MixedType,
		TotalInteractionEnergy: total,
		LigandAtoms:            ligand,
		ProteinAtoms:           protein,
	}
}
