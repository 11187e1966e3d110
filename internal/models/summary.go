package models

// SummaryStats holds aggregate statistics over the unfiltered energies of one record.
type SummaryStats struct {
	TotalInteractions      int     `json:"total_interactions"`
	TotalEnergy            float64 `json:"total_energy"`
	AttractiveInteractions int     `json:"attractive_interactions"`
	RepulsiveInteractions  int     `json:"repulsive_interactions"`
	StrongestAttractive    float64 `json:"strongest_attractive"`
	StrongestRepulsive     float64 `json:"strongest_repulsive"`
	AverageEnergy          float64 `json:"average_energy"`
	InteractionType        string  `json:"interaction_type"`
}
