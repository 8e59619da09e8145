package analyses

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/regpulse/regpulse/pkg/query"
	"github.com/regpulse/regpulse/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyses", "a").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("mode", "Mode").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("entity_count", "EntityCount").
	Project("failed_count", "FailedCount").
	Project("mean_score", "MeanScore").
	Project("sentiment", "Sentiment").
	Project("analyzed_at", "AnalyzedAt")

var scoreProjection = query.
	NewProjectionMap("public", "scores", "s").
	Project("id", "ID").
	Project("analysis_id", "AnalysisID").
	Project("ticker", "Ticker").
	Project("company_name", "CompanyName").
	Project("sector", "Sector").
	Project("impact_score", "Impact").
	Project("sentiment", "Sentiment").
	Project("reliability", "Reliability").
	Project("reasons", "Reasons").
	Project("explanation", "Explanation").
	Project("failed", "Failed").
	Project("failure_reason", "FailureReason")

var defaultSort = query.SortField{
	Field:      "AnalyzedAt",
	Descending: true,
}

var scoreSort = query.SortField{Field: "Ticker"}

// Filters contains optional filtering criteria for analysis queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	Mode       *string    `json:"mode,omitempty"`
	Sentiment  *string    `json:"sentiment,omitempty"`
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Mode", f.Mode).
		WhereEquals("Sentiment", f.Sentiment).
		WhereEquals("DocumentID", f.DocumentID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if m := values.Get("mode"); m != "" {
		f.Mode = &m
	}

	if s := values.Get("sentiment"); s != "" {
		f.Sentiment = &s
	}

	if d := values.Get("document_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DocumentID = &id
		}
	}

	return f
}

func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var a Analysis
	err := s.Scan(
		&a.ID,
		&a.DocumentID,
		&a.Mode,
		&a.ModelName,
		&a.ProviderName,
		&a.EntityCount,
		&a.FailedCount,
		&a.MeanScore,
		&a.Sentiment,
		&a.AnalyzedAt,
	)
	return a, err
}

func scanScore(s repository.Scanner) (Score, error) {
	var sc Score
	var reasonsRaw []byte

	err := s.Scan(
		&sc.ID,
		&sc.AnalysisID,
		&sc.Ticker,
		&sc.CompanyName,
		&sc.Sector,
		&sc.Impact,
		&sc.Sentiment,
		&sc.Reliability,
		&reasonsRaw,
		&sc.Explanation,
		&sc.Failed,
		&sc.FailureReason,
	)

	if err != nil {
		return sc, err
	}

	if len(reasonsRaw) > 0 {
		if err := json.Unmarshal(reasonsRaw, &sc.Reasons); err != nil {
			return sc, fmt.Errorf("unmarshal reasons: %w", err)
		}
	}

	if sc.Reasons == nil {
		sc.Reasons = []string{}
	}

	return sc, nil
}
