package dataset

import "github.com/hyperjump/fsaptvis/internal/models"

// DefaultEntries returns the built-in sample records.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Key: "LIG_PROT_001",
			Record: models.InteractionRecord{
				AtomIndices:            []int{15, 23, 45, 67, 89, 102, 134, 156, 178, 201},
				EnergyContributions:    []float64{-2.5, -1.8, -3.2, 1.5, -0.8, -2.1, 0.9, -1.4, -2.8, 1.2},
				InteractionType:        "electrostatic_dispersion",
				TotalInteractionEnergy: -8.8,
				LigandAtoms:            []int{15, 23, 45},
				ProteinAtoms:           []int{67, 89, 102, 134, 156, 178, 201},
			},
		},
		{
			Key: "LIG_PROT_002",
			Record: models.InteractionRecord{
				AtomIndices:            []int{12, 34, 56, 78, 90, 123, 145, 167, 189, 212},
				EnergyContributions:    []float64{-1.9, -2.4, -1.1, 2.1, -1.6, -3.0, 1.8, -0.7, -2.3, 0.8},
				InteractionType:        "hydrogen_bonding",
				TotalInteractionEnergy: -7.3,
				LigandAtoms:            []int{12, 34, 56},
				ProteinAtoms:           []int{78, 90, 123, 145, 167, 189, 212},
			},
		},
	}
}

// Default returns the built-in sample table.
func Default() *Table {
	t, err := NewTable(DefaultEntries())
	if err != nil {
		panic("dataset: invalid built-in table: " + err.Error())
	}
	return t
}
