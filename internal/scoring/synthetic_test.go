package scoring_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/regpulse/regpulse/internal/profiles"
	"github.com/regpulse/regpulse/internal/scoring"
)

func TestSyntheticScorer(t *testing.T) {
	scorer := scoring.NewSyntheticScorer()

	input := scoring.Input{
		Title: "Carbon Emissions Act",
		Text: "This regulation introduces carbon emission restrictions and " +
			"compliance obligations for energy producers.",
	}

	t.Run("never fails and always completes", func(t *testing.T) {
		batch := scoring.NewBatch(testConfig(t), scorer, testLogger())
		entities := makeProfiles(60)

		results, err := batch.Run(context.Background(), input, entities)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if len(results) != len(entities) {
			t.Fatalf("expected %d results, got %d", len(entities), len(results))
		}
		for ticker, r := range results {
			if r.Failed {
				t.Errorf("synthetic result for %s marked failed", ticker)
			}
		}
	})

	t.Run("scores stay in range", func(t *testing.T) {
		for _, p := range makeProfiles(100) {
			r, err := scorer.Score(context.Background(), input, p)
			if err != nil {
				t.Fatalf("score failed: %v", err)
			}

			if r.Impact < -3 || r.Impact > 3 {
				t.Errorf("impact %d out of range for %s", r.Impact, p.Ticker)
			}
			if r.Reliability < 0.70 || r.Reliability > 0.95 {
				t.Errorf("reliability %v out of range for %s", r.Reliability, p.Ticker)
			}
			if len(r.Reasons) == 0 || len(r.Reasons) > 2 {
				t.Errorf("expected 1-2 reasons, got %d for %s", len(r.Reasons), p.Ticker)
			}
		}
	})

	t.Run("deterministic for same document and ticker", func(t *testing.T) {
		p := profiles.Profile{Ticker: "XOM", CompanyName: "Exxon Mobil", Sector: "Energy"}

		first, err := scorer.Score(context.Background(), input, p)
		if err != nil {
			t.Fatalf("score failed: %v", err)
		}
		second, err := scorer.Score(context.Background(), input, p)
		if err != nil {
			t.Fatalf("score failed: %v", err)
		}

		if !reflect.DeepEqual(first, second) {
			t.Errorf("expected identical results, got %+v and %+v", first, second)
		}
	})

	t.Run("different documents vary the seed", func(t *testing.T) {
		other := scoring.Input{
			Title: "Digital Services Act",
			Text: strings.Repeat(
				"digital platform obligations and data transparency requirements ", 4,
			),
		}

		varied := false
		for _, p := range makeProfiles(30) {
			a, _ := scorer.Score(context.Background(), input, p)
			b, _ := scorer.Score(context.Background(), other, p)
			if !reflect.DeepEqual(a, b) {
				varied = true
				break
			}
		}

		if !varied {
			t.Error("expected results to differ across documents")
		}
	})

	t.Run("sentiment matches impact band", func(t *testing.T) {
		for _, p := range makeProfiles(50) {
			r, err := scorer.Score(context.Background(), input, p)
			if err != nil {
				t.Fatalf("score failed: %v", err)
			}

			if r.Sentiment != scoring.SentimentForScore(float64(r.Impact)) {
				t.Errorf("sentiment %s inconsistent with impact %d", r.Sentiment, r.Impact)
			}
		}
	})
}
