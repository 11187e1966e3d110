package interaction

import (
	"github.com/hyperjump/fsaptvis/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes statistics over rec's energies as given (no filtering).
func Summarize(rec *models.InteractionRecord) *models.SummaryStats {
	energies := rec.EnergyContributions
	sum := &models.SummaryStats{
		TotalInteractions: len(energies),
		InteractionType:   rec.InteractionType,
	}
	if rec.InteractionType == "" {
		sum.InteractionType = "unknown"
	}
	if len(energies) == 0 {
		return sum
	}
	for _, e := range energies {
		switch {
		case e < 0:
			sum.AttractiveInteractions++
		case e > 0:
			sum.RepulsiveInteractions++
		}
	}
	sum.TotalEnergy = floats.Sum(energies)
	sum.StrongestAttractive = floats.Min(energies)
	sum.StrongestRepulsive = floats.Max(energies)
	sum.AverageEnergy = stat.Mean(energies, nil)
	return sum
}
