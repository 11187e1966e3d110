package interaction

import "math"

// FilterSignificant returns new atom and energy slices holding only the entries with
// abs(energy) >= threshold, in their original order. The inputs are not modified.
func FilterSignificant(atoms []int, energies []float64, threshold float64) ([]int, []float64) {
	keptAtoms := make([]int, 0, len(energies))
	keptEnergies := make([]float64, 0, len(energies))
	for i, e := range energies {
		if math.Abs(e) >= threshold {
			keptAtoms = append(keptAtoms, atoms[i])
			keptEnergies = append(keptEnergies, e)
		}
	}
	return keptAtoms, keptEnergies
}
