// Package analyses implements the impact analysis domain. It provides
// types, data access, and business logic for executing the scoring workflow
// against a document and persisting the run plus its per-company scores.
package analyses

import (
	"time"

	"github.com/google/uuid"

	"github.com/regpulse/regpulse/internal/scoring"
)

// Analysis represents a stored impact analysis run for a document. One
// analysis exists per document; re-analysis overwrites it.
type Analysis struct {
	ID           uuid.UUID         `json:"id"`
	DocumentID   uuid.UUID         `json:"document_id"`
	Mode         string            `json:"mode"`
	ModelName    string            `json:"model_name"`
	ProviderName string            `json:"provider_name"`
	EntityCount  int               `json:"entity_count"`
	FailedCount  int               `json:"failed_count"`
	MeanScore    float64           `json:"mean_score"`
	Sentiment    scoring.Sentiment `json:"sentiment"`
	AnalyzedAt   time.Time         `json:"analyzed_at"`
}

// Score represents a stored per-company result within an analysis.
type Score struct {
	ID            uuid.UUID         `json:"id"`
	AnalysisID    uuid.UUID         `json:"analysis_id"`
	Ticker        string            `json:"ticker"`
	CompanyName   string            `json:"company_name"`
	Sector        string            `json:"sector"`
	Impact        int               `json:"impact_score"`
	Sentiment     scoring.Sentiment `json:"sentiment"`
	Reliability   float64           `json:"reliability"`
	Reasons       []string          `json:"reasons"`
	Explanation   string            `json:"explanation"`
	Failed        bool              `json:"failed"`
	FailureReason *string           `json:"failure_reason,omitempty"`
}

// Result converts a stored score back into its scoring result form for
// aggregation and report generation.
func (s Score) Result() scoring.Result {
	r := scoring.Result{
		Ticker:      s.Ticker,
		CompanyName: s.CompanyName,
		Sector:      s.Sector,
		Impact:      s.Impact,
		Sentiment:   s.Sentiment,
		Reliability: s.Reliability,
		Reasons:     s.Reasons,
		Explanation: s.Explanation,
		Failed:      s.Failed,
	}
	if s.FailureReason != nil {
		r.FailureReason = *s.FailureReason
	}
	return r
}
