package scoring_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/regpulse/regpulse/internal/profiles"
	"github.com/regpulse/regpulse/internal/scoring"
)

type stubScorer struct {
	calls  atomic.Int64
	scoreF func(p profiles.Profile) (scoring.Result, error)
}

func (s *stubScorer) Score(
	_ context.Context,
	_ scoring.Input,
	p profiles.Profile,
) (scoring.Result, error) {
	s.calls.Add(1)
	return s.scoreF(p)
}

func fixedResult(p profiles.Profile, impact int) scoring.Result {
	return scoring.Result{
		Ticker:      p.Ticker,
		CompanyName: p.CompanyName,
		Sector:      p.Sector,
		Impact:      impact,
		Sentiment:   scoring.SentimentForScore(float64(impact)),
		Reliability: 0.9,
	}
}

func makeProfiles(n int) []profiles.Profile {
	out := make([]profiles.Profile, n)
	for i := range out {
		out[i] = profiles.Profile{
			Ticker:      fmt.Sprintf("T%03d", i),
			CompanyName: fmt.Sprintf("Company %d", i),
			Sector:      "Technology",
		}
	}
	return out
}

func testConfig(t *testing.T) scoring.Config {
	t.Helper()

	cfg := scoring.Config{RetryWait: "1ms", CallTimeout: "5s"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBatchRun(t *testing.T) {
	t.Run("returns one result per profile", func(t *testing.T) {
		for _, n := range []int{0, 1, 7, 120} {
			t.Run(fmt.Sprintf("%d profiles", n), func(t *testing.T) {
				scorer := &stubScorer{scoreF: func(p profiles.Profile) (scoring.Result, error) {
					return fixedResult(p, 1), nil
				}}

				batch := scoring.NewBatch(testConfig(t), scorer, testLogger())
				results, err := batch.Run(context.Background(), scoring.Input{}, makeProfiles(n))
				if err != nil {
					t.Fatalf("run failed: %v", err)
				}

				if len(results) != n {
					t.Errorf("expected %d results, got %d", n, len(results))
				}
				for ticker, r := range results {
					if r.Ticker != ticker {
						t.Errorf("result keyed by %q carries ticker %q", ticker, r.Ticker)
					}
				}
			})
		}
	})

	t.Run("one failure does not block others", func(t *testing.T) {
		scorer := &stubScorer{scoreF: func(p profiles.Profile) (scoring.Result, error) {
			if p.Ticker == "T005" {
				return scoring.Result{}, errors.New("model exploded")
			}
			return fixedResult(p, 2), nil
		}}

		batch := scoring.NewBatch(testConfig(t), scorer, testLogger())
		results, err := batch.Run(context.Background(), scoring.Input{}, makeProfiles(10))
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if len(results) != 10 {
			t.Fatalf("expected 10 results, got %d", len(results))
		}

		failed := results["T005"]
		if !failed.Failed || failed.Impact != 0 || failed.Sentiment != scoring.Neutral {
			t.Errorf("expected neutral failed result, got %+v", failed)
		}
		if failed.FailureReason == "" {
			t.Error("expected failure reason to be recorded")
		}

		for ticker, r := range results {
			if ticker == "T005" {
				continue
			}
			if r.Failed {
				t.Errorf("entity %s should have succeeded: %+v", ticker, r)
			}
		}
	})

	t.Run("retries transient failures", func(t *testing.T) {
		var attempts atomic.Int64
		scorer := &stubScorer{scoreF: func(p profiles.Profile) (scoring.Result, error) {
			if attempts.Add(1) <= 2 {
				return scoring.Result{}, errors.New("429 too many requests")
			}
			return fixedResult(p, -1), nil
		}}

		batch := scoring.NewBatch(testConfig(t), scorer, testLogger())
		results, err := batch.Run(context.Background(), scoring.Input{}, makeProfiles(1))
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if attempts.Load() != 3 {
			t.Errorf("expected 3 attempts, got %d", attempts.Load())
		}
		if r := results["T000"]; r.Failed || r.Impact != -1 {
			t.Errorf("expected recovery on final retry, got %+v", r)
		}
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		scorer := &stubScorer{scoreF: func(p profiles.Profile) (scoring.Result, error) {
			return scoring.Result{}, errors.New("rate limit exceeded")
		}}

		cfg := testConfig(t)
		batch := scoring.NewBatch(cfg, scorer, testLogger())
		results, err := batch.Run(context.Background(), scoring.Input{}, makeProfiles(1))
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		// 1 initial attempt + MaxRetries retries
		if want := int64(cfg.MaxRetries + 1); scorer.calls.Load() != want {
			t.Errorf("expected %d attempts, got %d", want, scorer.calls.Load())
		}
		if r := results["T000"]; !r.Failed {
			t.Errorf("expected failed result, got %+v", r)
		}
	})

	t.Run("does not retry terminal failures", func(t *testing.T) {
		scorer := &stubScorer{scoreF: func(p profiles.Profile) (scoring.Result, error) {
			return scoring.Result{}, errors.New("invalid provider configuration")
		}}

		batch := scoring.NewBatch(testConfig(t), scorer, testLogger())
		if _, err := batch.Run(context.Background(), scoring.Input{}, makeProfiles(1)); err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if scorer.calls.Load() != 1 {
			t.Errorf("expected 1 attempt, got %d", scorer.calls.Load())
		}
	})

	t.Run("rejects duplicate tickers", func(t *testing.T) {
		scorer := &stubScorer{scoreF: func(p profiles.Profile) (scoring.Result, error) {
			return fixedResult(p, 0), nil
		}}

		entities := makeProfiles(2)
		entities[1].Ticker = entities[0].Ticker

		batch := scoring.NewBatch(testConfig(t), scorer, testLogger())
		_, err := batch.Run(context.Background(), scoring.Input{}, entities)
		if !errors.Is(err, scoring.ErrDuplicateTicker) {
			t.Errorf("expected ErrDuplicateTicker, got %v", err)
		}
	})

	t.Run("fixed scorer is deterministic across runs", func(t *testing.T) {
		scorer := &stubScorer{scoreF: func(p profiles.Profile) (scoring.Result, error) {
			return fixedResult(p, len(p.Ticker)%4-1), nil
		}}

		batch := scoring.NewBatch(testConfig(t), scorer, testLogger())
		input := scoring.Input{Title: "Energy Act", Text: "emissions regulation"}
		entities := makeProfiles(25)

		first, err := batch.Run(context.Background(), input, entities)
		if err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		second, err := batch.Run(context.Background(), input, entities)
		if err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		if !reflect.DeepEqual(first, second) {
			t.Error("expected identical results across runs")
		}
	})
}

func TestConfigMaxRetries(t *testing.T) {
	t.Run("zero selects the default", func(t *testing.T) {
		cfg := scoring.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.MaxRetries != 2 {
			t.Errorf("expected default of 2 retries, got %d", cfg.MaxRetries)
		}
	})

	t.Run("negative disables retries", func(t *testing.T) {
		cfg := scoring.Config{MaxRetries: -1}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.MaxRetries != 0 {
			t.Errorf("expected 0 retries, got %d", cfg.MaxRetries)
		}
	})

	t.Run("disabled retries make a single attempt", func(t *testing.T) {
		cfg := scoring.Config{MaxRetries: -1, RetryWait: "1ms", CallTimeout: "5s"}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}

		scorer := &stubScorer{scoreF: func(p profiles.Profile) (scoring.Result, error) {
			return scoring.Result{}, errors.New("429 too many requests")
		}}

		batch := scoring.NewBatch(cfg, scorer, testLogger())
		if _, err := batch.Run(context.Background(), scoring.Input{}, makeProfiles(1)); err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if scorer.calls.Load() != 1 {
			t.Errorf("expected 1 attempt, got %d", scorer.calls.Load())
		}
	})
}

func TestBatchRunWithFallback(t *testing.T) {
	t.Run("dead endpoint reruns the batch synthetically", func(t *testing.T) {
		scorer := &stubScorer{scoreF: func(p profiles.Profile) (scoring.Result, error) {
			return scoring.Result{}, errors.New("connection refused")
		}}

		batch := scoring.NewBatch(testConfig(t), scorer, testLogger())
		input := scoring.Input{Title: "Energy Act", Text: "emissions regulation"}

		results, mode, err := batch.RunWithFallback(context.Background(), input, makeProfiles(5))
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if mode != scoring.ModeSynthetic {
			t.Errorf("expected synthetic mode after fallback, got %s", mode)
		}
		if len(results) != 5 {
			t.Fatalf("expected 5 results, got %d", len(results))
		}
		for ticker, r := range results {
			if r.Failed {
				t.Errorf("entity %s still failed after fallback: %+v", ticker, r)
			}
			if r.Impact < -3 || r.Impact > 3 {
				t.Errorf("entity %s impact %d out of range", ticker, r.Impact)
			}
		}
	})

	t.Run("partial failure keeps agent results", func(t *testing.T) {
		scorer := &stubScorer{scoreF: func(p profiles.Profile) (scoring.Result, error) {
			if p.Ticker == "T002" {
				return scoring.Result{}, errors.New("connection refused")
			}
			return fixedResult(p, 1), nil
		}}

		batch := scoring.NewBatch(testConfig(t), scorer, testLogger())
		results, mode, err := batch.RunWithFallback(context.Background(), scoring.Input{}, makeProfiles(4))
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if mode != scoring.ModeAgent {
			t.Errorf("expected agent mode, got %s", mode)
		}
		if !results["T002"].Failed {
			t.Error("expected T002 to remain a failed result")
		}
		if results["T000"].Failed {
			t.Errorf("expected T000 to succeed: %+v", results["T000"])
		}
	})

	t.Run("synthetic mode never falls through twice", func(t *testing.T) {
		cfg := scoring.Config{Mode: scoring.ModeSynthetic, RetryWait: "1ms", CallTimeout: "5s"}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}

		batch := scoring.NewBatch(cfg, scoring.NewSyntheticScorer(), testLogger())
		results, mode, err := batch.RunWithFallback(context.Background(), scoring.Input{Text: "directive"}, makeProfiles(3))
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if mode != scoring.ModeSynthetic {
			t.Errorf("expected synthetic mode, got %s", mode)
		}
		if len(results) != 3 {
			t.Errorf("expected 3 results, got %d", len(results))
		}
	})

	t.Run("empty batch stays in agent mode", func(t *testing.T) {
		scorer := &stubScorer{scoreF: func(p profiles.Profile) (scoring.Result, error) {
			return scoring.Result{}, errors.New("connection refused")
		}}

		batch := scoring.NewBatch(testConfig(t), scorer, testLogger())
		results, mode, err := batch.RunWithFallback(context.Background(), scoring.Input{}, nil)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if mode != scoring.ModeAgent {
			t.Errorf("expected agent mode for empty batch, got %s", mode)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})
}

func TestSentimentForScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected scoring.Sentiment
	}{
		{-3, scoring.VeryNegative},
		{-2, scoring.VeryNegative},
		{-1, scoring.Negative},
		{0, scoring.Neutral},
		{1, scoring.Positive},
		{2, scoring.VeryPositive},
		{3, scoring.VeryPositive},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score %v", tt.score), func(t *testing.T) {
			if s := scoring.SentimentForScore(tt.score); s != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, s)
			}
		})
	}
}
