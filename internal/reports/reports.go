// Package reports renders analysis results as flat score records and a
// per-company recommendations table. Both the HTTP export endpoints and the
// offline pipeline share these writers.
package reports

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/regpulse/regpulse/internal/scoring"
)

// Record is one flat score entry in the JSON report.
type Record struct {
	Ticker        string            `json:"ticker"`
	CompanyName   string            `json:"company_name"`
	Sector        string            `json:"sector"`
	ImpactScore   int               `json:"impact_score"`
	Sentiment     scoring.Sentiment `json:"sentiment"`
	Reliability   float64           `json:"reliability"`
	Reasons       []string          `json:"reasons"`
	Explanation   string            `json:"explanation"`
	Failed        bool              `json:"failed"`
	FailureReason string            `json:"failure_reason,omitempty"`
	DateAnalyzed  string            `json:"date_analyzed"`
}

// Recommendation is one per-company row in the recommendations CSV.
type Recommendation struct {
	Ticker          string  `json:"ticker"`
	CompanyName     string  `json:"company_name"`
	Sector          string  `json:"sector"`
	MeanScore       float64 `json:"mean_score"`
	MeanReliability float64 `json:"mean_reliability"`
	Recommendation  string  `json:"recommendation"`
}

// Records flattens batch results into report records sorted by ticker.
func Records(results map[string]scoring.Result, analyzedAt time.Time) []Record {
	records := make([]Record, 0, len(results))
	date := analyzedAt.Format("2006-01-02 15:04")

	for _, r := range results {
		reasons := r.Reasons
		if reasons == nil {
			reasons = []string{}
		}

		records = append(records, Record{
			Ticker:        r.Ticker,
			CompanyName:   r.CompanyName,
			Sector:        r.Sector,
			ImpactScore:   r.Impact,
			Sentiment:     r.Sentiment,
			Reliability:   r.Reliability,
			Reasons:       reasons,
			Explanation:   r.Explanation,
			Failed:        r.Failed,
			FailureReason: r.FailureReason,
			DateAnalyzed:  date,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Ticker < records[j].Ticker
	})

	return records
}

// WriteJSON writes the score records as indented JSON.
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return nil
}

// RecommendationForScore maps a mean impact score onto an action band.
func RecommendationForScore(score float64) string {
	switch {
	case score <= -1.5:
		return "SELL"
	case score <= -0.5:
		return "REDUCE"
	case score <= 0.5:
		return "HOLD"
	case score <= 1.5:
		return "BUY"
	default:
		return "STRONG_BUY"
	}
}

// Recommendations aggregates records per company into recommendation rows
// sorted by mean score ascending. Failed records carry no signal and are
// excluded.
func Recommendations(records []Record) []Recommendation {
	type agg struct {
		companyName      string
		sector           string
		count            int
		scoreTotal       float64
		reliabilityTotal float64
	}

	byTicker := make(map[string]*agg)
	for _, r := range records {
		if r.Failed {
			continue
		}

		a, ok := byTicker[r.Ticker]
		if !ok {
			a = &agg{companyName: r.CompanyName, sector: r.Sector}
			byTicker[r.Ticker] = a
		}
		a.count++
		a.scoreTotal += float64(r.ImpactScore)
		a.reliabilityTotal += r.Reliability
	}

	recs := make([]Recommendation, 0, len(byTicker))
	for ticker, a := range byTicker {
		mean := a.scoreTotal / float64(a.count)
		recs = append(recs, Recommendation{
			Ticker:          ticker,
			CompanyName:     a.companyName,
			Sector:          a.sector,
			MeanScore:       mean,
			MeanReliability: a.reliabilityTotal / float64(a.count),
			Recommendation:  RecommendationForScore(mean),
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].MeanScore != recs[j].MeanScore {
			return recs[i].MeanScore < recs[j].MeanScore
		}
		return recs[i].Ticker < recs[j].Ticker
	})

	return recs
}

// WriteRecommendationsCSV writes the recommendations table with a header row.
func WriteRecommendationsCSV(w io.Writer, recs []Recommendation) error {
	cw := csv.NewWriter(w)

	header := []string{
		"ticker", "company_name", "sector",
		"mean_score", "mean_reliability", "recommendation",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range recs {
		row := []string{
			r.Ticker,
			r.CompanyName,
			r.Sector,
			fmt.Sprintf("%.2f", r.MeanScore),
			fmt.Sprintf("%.2f", r.MeanReliability),
			r.Recommendation,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", r.Ticker, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
