// Package scoring produces per-company impact scores for a regulatory
// document. It defines the Scorer contract, an agent-backed scorer that
// calls the configured inference model, a deterministic synthetic scorer
// for environments without an inference endpoint, and a bounded-concurrency
// batch runner with per-entity retries.
package scoring

import (
	"context"

	"github.com/regpulse/regpulse/internal/profiles"
)

// Mode selects how scores are produced.
type Mode string

const (
	// ModeAgent scores through the configured inference model.
	ModeAgent Mode = "agent"
	// ModeSynthetic scores deterministically without an inference endpoint.
	ModeSynthetic Mode = "synthetic"
)

// Input is the regulatory document under analysis.
type Input struct {
	Title string
	Text  string
}

// Result is the impact assessment for one company. A failed result carries
// a neutral score and the reason scoring gave up.
type Result struct {
	Ticker        string    `json:"ticker"`
	CompanyName   string    `json:"company_name"`
	Sector        string    `json:"sector"`
	Impact        int       `json:"impact_score"`
	Sentiment     Sentiment `json:"sentiment"`
	Reliability   float64   `json:"reliability"`
	Reasons       []string  `json:"reasons"`
	Explanation   string    `json:"explanation"`
	Failed        bool      `json:"failed"`
	FailureReason string    `json:"failure_reason,omitempty"`
}

// Scorer scores one company against one document.
type Scorer interface {
	Score(ctx context.Context, input Input, profile profiles.Profile) (Result, error)
}

// Sentiment is the categorical band of an impact score.
type Sentiment string

// Sentiment bands, most negative to most positive.
const (
	VeryNegative Sentiment = "VERY_NEGATIVE"
	Negative     Sentiment = "NEGATIVE"
	Neutral      Sentiment = "NEUTRAL"
	Positive     Sentiment = "POSITIVE"
	VeryPositive Sentiment = "VERY_POSITIVE"
)

// SentimentForScore maps a mean or integer score onto its sentiment band.
func SentimentForScore(score float64) Sentiment {
	switch {
	case score < -1.5:
		return VeryNegative
	case score < -0.5:
		return Negative
	case score < 0.5:
		return Neutral
	case score < 1.5:
		return Positive
	default:
		return VeryPositive
	}
}

// ClampImpact bounds an impact score to the valid [-3, 3] range.
func ClampImpact(score int) int {
	if score < -3 {
		return -3
	}
	if score > 3 {
		return 3
	}
	return score
}
