package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/regpulse/regpulse/internal/scoring"
)

const (
	KeyDocumentID = "document_id"
	KeyInput      = "document_input"
	KeyFilename   = "filename"
	KeyResults    = "score_results"
	KeyMode       = "score_mode"
	KeySummary    = "analysis_summary"
)

// SectorSummary aggregates scored companies within one sector.
type SectorSummary struct {
	Sector       string            `json:"sector"`
	CompanyCount int               `json:"company_count"`
	MeanScore    float64           `json:"mean_score"`
	Sentiment    scoring.Sentiment `json:"sentiment"`
}

// Summary holds document-level aggregates over all per-entity results.
// MeanScore averages successful results only.
type Summary struct {
	EntityCount int               `json:"entity_count"`
	FailedCount int               `json:"failed_count"`
	MeanScore   float64           `json:"mean_score"`
	Sentiment   scoring.Sentiment `json:"sentiment"`
	Sectors     []SectorSummary   `json:"sectors"`
}

// WorkflowResult is the final output from an impact analysis execution.
type WorkflowResult struct {
	DocumentID  uuid.UUID                 `json:"document_id"`
	Filename    string                    `json:"filename"`
	Mode        scoring.Mode              `json:"mode"`
	Results     map[string]scoring.Result `json:"results"`
	Summary     Summary                   `json:"summary"`
	CompletedAt time.Time                 `json:"completed_at"`
}
