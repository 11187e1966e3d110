package models

// AnalysisRequest is the body of POST /api/fsapt-analysis.
// Required fields are pointers so that presence, not emptiness, is validated.
type AnalysisRequest struct {
	LigandID  *string  `json:"ligand_id" validate:"required"`
	ProteinID *string  `json:"protein_id" validate:"required"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// AnalysisResponse wraps an analysis result. Data is an empty object on failure.
type AnalysisResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// PairsResponse lists the pair keys of the fixed table.
type PairsResponse struct {
	Success bool     `json:"success"`
	Pairs   []string `json:"pairs"`
	Message string   `json:"message"`
}

// SummaryResponse wraps summary statistics. Summary is an empty object on failure.
type SummaryResponse struct {
	Success bool        `json:"success"`
	Summary interface{} `json:"summary"`
	Message string      `json:"message"`
}

// ErrorResponse is the envelope for route-level failures (not found, panics).
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
