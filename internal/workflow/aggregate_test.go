package workflow_test

import (
	"math"
	"testing"

	"github.com/regpulse/regpulse/internal/scoring"
	"github.com/regpulse/regpulse/internal/workflow"
)

func result(ticker, sector string, impact int, failed bool) scoring.Result {
	return scoring.Result{
		Ticker:    ticker,
		Sector:    sector,
		Impact:    impact,
		Sentiment: scoring.SentimentForScore(float64(impact)),
		Failed:    failed,
	}
}

func TestSummarize(t *testing.T) {
	t.Run("empty results", func(t *testing.T) {
		summary := workflow.Summarize(map[string]scoring.Result{})

		if summary.EntityCount != 0 || summary.FailedCount != 0 {
			t.Errorf("unexpected counts: %+v", summary)
		}
		if summary.MeanScore != 0 || summary.Sentiment != scoring.Neutral {
			t.Errorf("expected neutral summary: %+v", summary)
		}
	})

	t.Run("failed entities excluded from mean but counted", func(t *testing.T) {
		summary := workflow.Summarize(map[string]scoring.Result{
			"A": result("A", "Energy", -2, false),
			"B": result("B", "Energy", -1, false),
			"C": result("C", "Technology", 3, false),
			"D": result("D", "Technology", 0, true),
		})

		if summary.EntityCount != 4 {
			t.Errorf("expected 4 entities, got %d", summary.EntityCount)
		}
		if summary.FailedCount != 1 {
			t.Errorf("expected 1 failure, got %d", summary.FailedCount)
		}
		if math.Abs(summary.MeanScore-0.0) > 1e-9 {
			t.Errorf("expected mean 0, got %v", summary.MeanScore)
		}
	})

	t.Run("sector summaries sorted by mean ascending", func(t *testing.T) {
		summary := workflow.Summarize(map[string]scoring.Result{
			"A": result("A", "Energy", -2, false),
			"B": result("B", "Energy", -3, false),
			"C": result("C", "Technology", 2, false),
			"D": result("D", "Health", 0, false),
		})

		if len(summary.Sectors) != 3 {
			t.Fatalf("expected 3 sectors, got %d", len(summary.Sectors))
		}

		expected := []string{"Energy", "Health", "Technology"}
		for i, sector := range expected {
			if summary.Sectors[i].Sector != sector {
				t.Errorf("position %d: expected %s, got %s", i, sector, summary.Sectors[i].Sector)
			}
		}

		energy := summary.Sectors[0]
		if energy.CompanyCount != 2 || math.Abs(energy.MeanScore-(-2.5)) > 1e-9 {
			t.Errorf("unexpected energy aggregate: %+v", energy)
		}
		if energy.Sentiment != scoring.VeryNegative {
			t.Errorf("expected VERY_NEGATIVE, got %s", energy.Sentiment)
		}
	})
}
