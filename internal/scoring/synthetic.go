package scoring

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"

	"github.com/regpulse/regpulse/internal/profiles"
)

// sectorSignals map document keywords to the sector classes they affect.
var sectorSignals = map[string][]string{
	"technology": {"ai", "artificial intelligence", "digital", "data", "software", "numérique"},
	"finance":    {"bank", "financial", "capital", "credit", "basel", "bancaire", "financier"},
	"energy":     {"carbon", "emission", "climate", "esg", "environment", "carbone", "émissions", "climat"},
	"health":     {"health", "medical", "pharmaceutical", "drug", "santé", "médical", "médicament"},
}

// strictTerms signal a restrictive regulation, which biases affected
// sectors negative.
var strictTerms = []string{
	"ban", "prohibition", "restriction", "obligation", "sanction", "penalty",
	"interdiction",
}

// SyntheticScorer produces plausible deterministic scores without an
// inference endpoint. Scores are seeded from the document text and ticker,
// so re-running an analysis yields identical results. It never fails.
type SyntheticScorer struct{}

func NewSyntheticScorer() *SyntheticScorer {
	return &SyntheticScorer{}
}

// Score derives an impact from sector keyword signals in the document plus
// seeded noise. The returned error is always nil.
func (s *SyntheticScorer) Score(
	_ context.Context,
	input Input,
	profile profiles.Profile,
) (Result, error) {
	rng := rand.New(rand.NewSource(seed(input.Text, profile.Ticker)))
	text := strings.ToLower(input.Text)
	sector := strings.ToLower(profile.Sector)

	base := baseScore(rng, text, sector)
	noise := rng.NormFloat64() * 0.5
	impact := ClampImpact(int(math.Round(clip(base+noise, -3, 3))))

	reliability := math.Round((0.70+rng.Float64()*0.25)*100) / 100

	return Result{
		Ticker:      profile.Ticker,
		CompanyName: profile.CompanyName,
		Sector:      profile.Sector,
		Impact:      impact,
		Sentiment:   SentimentForScore(float64(impact)),
		Reliability: reliability,
		Reasons:     reasonsForScore(impact, profile.Sector),
		Explanation: fmt.Sprintf(
			"Synthetic assessment for %s based on sector exposure signals in the document.",
			profile.CompanyName,
		),
	}, nil
}

func baseScore(rng *rand.Rand, text, sector string) float64 {
	affected := false
	for class, signals := range sectorSignals {
		if !strings.Contains(sector, class) && !sectorMatches(sector, class) {
			continue
		}
		for _, signal := range signals {
			if strings.Contains(text, signal) {
				affected = true
				break
			}
		}
	}

	if !affected {
		return uniform(rng, -1, 1)
	}

	for _, term := range strictTerms {
		if strings.Contains(text, term) {
			return uniform(rng, -2.5, -0.5)
		}
	}

	return uniform(rng, -1, 2)
}

// sectorMatches maps common sector labels onto the signal classes.
func sectorMatches(sector, class string) bool {
	aliases := map[string][]string{
		"technology": {"tech", "software", "semiconductor", "hardware", "internet"},
		"finance":    {"financ", "bank", "insurance", "payment"},
		"energy":     {"energy", "oil", "gas", "utilities"},
		"health":     {"health", "pharma", "biotech", "medical"},
	}

	for _, alias := range aliases[class] {
		if strings.Contains(sector, alias) {
			return true
		}
	}
	return false
}

func reasonsForScore(impact int, sector string) []string {
	switch {
	case impact <= -2:
		return []string{
			fmt.Sprintf("Significant regulatory constraints for the %s sector", sector),
			"High anticipated compliance costs",
		}
	case impact < 0:
		return []string{
			fmt.Sprintf("Operational adjustments required in %s", sector),
			"Compliance deadlines to meet",
		}
	case impact < 1:
		return []string{
			"Limited impact on current operations",
			"Adaptation period provided by the regulation",
		}
	case impact < 2:
		return []string{
			fmt.Sprintf("Growth opportunities in the %s sector", sector),
			"Competitive advantages for compliant players",
		}
	default:
		return []string{
			fmt.Sprintf("Major catalyst for the %s sector", sector),
			"Entry barriers favoring incumbents",
		}
	}
}

func seed(text, ticker string) int64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	h.Write([]byte{'|'})
	h.Write([]byte(ticker))
	return int64(h.Sum64())
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
