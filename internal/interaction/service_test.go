package interaction

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/hyperjump/fsaptvis/internal/dataset"
	"github.com/hyperjump/fsaptvis/internal/models"
	"github.com/hyperjump/fsaptvis/internal/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	return NewService(dataset.Default(), synth.New(), zap.NewNop(), opts...)
}

func TestGetInteractions_knownPairUnfiltered(t *testing.T) {
	svc := newTestService(t)
	rec, err := svc.GetInteractions(context.Background(), "LIG", "PROT_001", 0)
	require.NoError(t, err)

	want, _ := dataset.Default().Lookup("LIG_PROT_001")
	assert.Equal(t, want.AtomIndices, rec.AtomIndices)
	assert.Equal(t, want.EnergyContributions, rec.EnergyContributions)
	assert.Equal(t, want.LigandAtoms, rec.LigandAtoms)
	assert.Equal(t, want.ProteinAtoms, rec.ProteinAtoms)
}

func TestGetInteractions_thresholdHalfKeepsAll(t *testing.T) {
	svc := newTestService(t)
	rec, err := svc.GetInteractions(context.Background(), "LIG", "PROT_001", DefaultThreshold)
	require.NoError(t, err)
	assert.Len(t, rec.EnergyContributions, 10)
}

func TestGetInteractions_thresholdOneDropsWeakEntries(t *testing.T) {
	svc := newTestService(t)
	rec, err := svc.GetInteractions(context.Background(), "LIG", "PROT_001", 1.0)
	require.NoError(t, err)

	assert.Equal(t, []float64{-2.5, -1.8, -3.2, 1.5, -2.1, -1.4, -2.8, 1.2}, rec.EnergyContributions)
	assert.Equal(t, []int{15, 23, 45, 67, 102, 156, 178, 201}, rec.AtomIndices)
	assert.Equal(t, -8.8, rec.TotalInteractionEnergy, "stored total is not recomputed after filtering")
}

func TestGetInteractions_doesNotMutateTable(t *testing.T) {
	tbl := dataset.Default()
	svc := NewService(tbl, nil, nil)
	_, err := svc.GetInteractions(context.Background(), "LIG", "PROT_002", 2.0)
	require.NoError(t, err)

	rec, err := svc.GetInteractions(context.Background(), "LIG", "PROT_002", 0)
	require.NoError(t, err)
	assert.Len(t, rec.EnergyContributions, 10)
}

func TestGetInteractions_nonPositiveThresholdMatchesZero(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for _, pair := range [][2]string{{"LIG", "PROT_001"}, {"X", "Y"}} {
		zero, err := svc.GetInteractions(ctx, pair[0], pair[1], 0)
		require.NoError(t, err)
		for _, th := range []float64{-0.1, -5, math.Inf(-1)} {
			got, err := svc.GetInteractions(ctx, pair[0], pair[1], th)
			require.NoError(t, err)
			assert.Equal(t, zero, got)
		}
	}
}

func TestGetInteractions_filterProperties(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	pairs := [][2]string{{"LIG", "PROT_001"}, {"LIG", "PROT_002"}, {"A", "B"}, {"ligand-7", "1abc"}}
	for _, pair := range pairs {
		full, err := svc.GetInteractions(ctx, pair[0], pair[1], 0)
		require.NoError(t, err)
		for _, th := range []float64{0.1, 0.5, 0.8, 1.0, 2.0, 3.5, 10} {
			got, err := svc.GetInteractions(ctx, pair[0], pair[1], th)
			require.NoError(t, err)
			require.Equal(t, len(got.AtomIndices), len(got.EnergyContributions))

			// Retained entries appear in the same relative order as in the full record.
			j := 0
			for i := range got.EnergyContributions {
				assert.GreaterOrEqual(t, math.Abs(got.EnergyContributions[i]), th)
				for j < len(full.EnergyContributions) &&
					(full.EnergyContributions[j] != got.EnergyContributions[i] || full.AtomIndices[j] != got.AtomIndices[i]) {
					j++
				}
				require.Less(t, j, len(full.EnergyContributions), "entry %d not found in order", i)
				j++
			}
		}
	}
}

func TestGetInteractions_synthesizedDeterministic(t *testing.T) {
	svc := newTestService(t)
	a, err := svc.GetInteractions(context.Background(), "X", "Y", 0)
	require.NoError(t, err)
	b, err := svc.GetInteractions(context.Background(), "X", "Y", 0)
	require.NoError(t, err)
	assert.Equal(t, a.AtomIndices, b.AtomIndices)
	assert.Equal(t, a.EnergyContributions, b.EnergyContributions)
	assert.Equal(t, synth.MixedType, a.InteractionType)
}

func TestGetInteractions_cancelledContext(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.GetInteractions(ctx, "LIG", "PROT_001", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProcessing))
}

type brokenSynthesizer struct{}

func (brokenSynthesizer) Synthesize(string, string) *models.InteractionRecord {
	return &models.InteractionRecord{AtomIndices: []int{1, 2}, EnergyContributions: []float64{-1}}
}

func TestGetInteractions_inconsistentRecordIsProcessingError(t *testing.T) {
	svc := NewService(dataset.Default(), brokenSynthesizer{}, zap.NewNop())
	_, err := svc.GetInteractions(context.Background(), "no", "such", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProcessing))
	assert.Contains(t, err.Error(), "no_such")
}

func TestGetInteractions_emptyTableSynthesizesEverything(t *testing.T) {
	empty, err := dataset.NewTable(nil)
	require.NoError(t, err)
	svc := NewService(empty, nil, nil)
	assert.Empty(t, svc.AvailablePairs())

	rec, err := svc.GetInteractions(context.Background(), "LIG", "PROT_001", 0)
	require.NoError(t, err)
	assert.Equal(t, synth.MixedType, rec.InteractionType)
}

type recordingObserver struct {
	sources     []Source
	significant []int
}

func (r *recordingObserver) ObserveAnalysis(source Source, significant int) {
	r.sources = append(r.sources, source)
	r.significant = append(r.significant, significant)
}

func TestGetInteractions_observer(t *testing.T) {
	obs := &recordingObserver{}
	svc := newTestService(t, WithObserver(obs))
	_, err := svc.GetInteractions(context.Background(), "LIG", "PROT_001", 1.0)
	require.NoError(t, err)
	_, err = svc.GetInteractions(context.Background(), "X", "Y", 0)
	require.NoError(t, err)

	assert.Equal(t, []Source{SourceTable, SourceSynthesized}, obs.sources)
	assert.Equal(t, 8, obs.significant[0])
}

func TestAvailablePairs(t *testing.T) {
	svc := newTestService(t)
	assert.Equal(t, []string{"LIG_PROT_001", "LIG_PROT_002"}, svc.AvailablePairs())
}

func TestSummarize_knownPair(t *testing.T) {
	svc := newTestService(t)
	sum, err := svc.Summarize(context.Background(), "LIG", "PROT_001")
	require.NoError(t, err)

	assert.Equal(t, 10, sum.TotalInteractions)
	assert.Equal(t, 7, sum.AttractiveInteractions)
	assert.Equal(t, 3, sum.RepulsiveInteractions)
	assert.InDelta(t, -11.0, sum.TotalEnergy, 1e-9)
	assert.Equal(t, -3.2, sum.StrongestAttractive)
	assert.Equal(t, 1.5, sum.StrongestRepulsive)
	assert.InDelta(t, -1.1, sum.AverageEnergy, 1e-9)
	assert.Equal(t, "electrostatic_dispersion", sum.InteractionType)
}

func TestSummarize_properties(t *testing.T) {
	svc := newTestService(t)
	for _, pair := range [][2]string{{"LIG", "PROT_002"}, {"X", "Y"}, {"abc", "def"}} {
		sum, err := svc.Summarize(context.Background(), pair[0], pair[1])
		require.NoError(t, err)
		rec, err := svc.GetInteractions(context.Background(), pair[0], pair[1], 0)
		require.NoError(t, err)

		assert.Equal(t, len(rec.EnergyContributions), sum.TotalInteractions)
		assert.LessOrEqual(t, sum.AttractiveInteractions+sum.RepulsiveInteractions, sum.TotalInteractions)
		var total float64
		for _, e := range rec.EnergyContributions {
			total += e
		}
		assert.InDelta(t, total, sum.TotalEnergy, 1e-9)
		assert.Equal(t, sum.TotalEnergy/float64(sum.TotalInteractions), sum.AverageEnergy)
	}
}

func TestSummarize_emptyAndZeroEnergies(t *testing.T) {
	sum := Summarize(&models.InteractionRecord{InteractionType: "none"})
	assert.Equal(t, models.SummaryStats{InteractionType: "none"}, *sum)

	sum = Summarize(&models.InteractionRecord{
		AtomIndices:         []int{1, 2, 3},
		EnergyContributions: []float64{0, -1, 2},
	})
	assert.Equal(t, 3, sum.TotalInteractions)
	assert.Equal(t, 1, sum.AttractiveInteractions)
	assert.Equal(t, 1, sum.RepulsiveInteractions)
	assert.Equal(t, "unknown", sum.InteractionType)
}

func TestFilterSignificant(t *testing.T) {
	atoms := []int{1, 2, 3, 4}
	energies := []float64{-0.5, 0.49, -0.51, 0.5}
	gotAtoms, gotEnergies := FilterSignificant(atoms, energies, 0.5)
	assert.Equal(t, []int{1, 3, 4}, gotAtoms)
	assert.Equal(t, []float64{-0.5, -0.51, 0.5}, gotEnergies)
	assert.Equal(t, []float64{-0.5, 0.49, -0.51, 0.5}, energies, "input must not change")

	gotAtoms, gotEnergies = FilterSignificant(atoms, energies, 100)
	assert.NotNil(t, gotAtoms)
	assert.Empty(t, gotEnergies)
}
