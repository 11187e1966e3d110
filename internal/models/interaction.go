// Package models defines the interaction records, summaries, and API envelopes shared by the service, server, and CLI.
package models

// InteractionRecord is one ligand-protein interaction analysis.
// AtomIndices and EnergyContributions are parallel: entry i of one belongs to entry i of the other.
type InteractionRecord struct {
	AtomIndices            []int     `json:"atom_indices" yaml:"atom_indices"`
	EnergyContributions    []float64 `json:"energy_contributions" yaml:"energy_contributions"`
	InteractionType        string    `json:"interaction_type" yaml:"interaction_type"`
	TotalInteractionEnergy float64   `json:"total_interaction_energy" yaml:"total_interaction_energy"`
	LigandAtoms            []int     `json:"ligand_atoms" yaml:"ligand_atoms"`
	ProteinAtoms           []int     `json:"protein_atoms" yaml:"protein_atoms"`
}

// Clone returns a deep copy. Nil slices come back as empty slices so they encode as [].
func (r *InteractionRecord) Clone() *InteractionRecord {
	if r == nil {
		return nil
	}
	return &InteractionRecord{
		AtomIndices:            cloneInts(r.AtomIndices),
		EnergyContributions:    cloneFloats(r.EnergyContributions),
		InteractionType:        r.InteractionType,
		TotalInteractionEnergy: r.TotalInteractionEnergy,
		LigandAtoms:            cloneInts(r.LigandAtoms),
		ProteinAtoms:           cloneInts(r.ProteinAtoms),
	}
}

// Len returns the number of interactions in the record.
func (r *InteractionRecord) Len() int {
	return len(r.EnergyContributions)
}

// Consistent reports whether the parallel atom/energy lists have equal length.
func (r *InteractionRecord) Consistent() bool {
	return len(r.AtomIndices) == len(r.EnergyContributions)
}

func cloneInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}

func cloneFloats(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
