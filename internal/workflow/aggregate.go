package workflow

import (
	"context"
	"fmt"
	"sort"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/regpulse/regpulse/internal/scoring"
)

// AggregateNode returns a state node that rolls per-entity results up into
// the document-level Summary: mean score, failure count, and per-sector
// aggregates. Failed entities are excluded from means but counted.
func AggregateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		results, err := extractResults(s)
		if err != nil {
			return s, fmt.Errorf("aggregate: %w", err)
		}

		summary := Summarize(results)

		rt.Logger.InfoContext(
			ctx, "aggregate node complete",
			"entity_count", summary.EntityCount,
			"failed_count", summary.FailedCount,
			"mean_score", summary.MeanScore,
		)

		s = s.Set(KeySummary, summary)
		return s, nil
	})
}

// Summarize computes document-level and per-sector aggregates.
func Summarize(results map[string]scoring.Result) Summary {
	summary := Summary{EntityCount: len(results)}

	type sectorAgg struct {
		count int
		total float64
	}
	sectors := make(map[string]*sectorAgg)

	scored := 0
	total := 0.0
	for _, r := range results {
		if r.Failed {
			summary.FailedCount++
			continue
		}

		scored++
		total += float64(r.Impact)

		agg, ok := sectors[r.Sector]
		if !ok {
			agg = &sectorAgg{}
			sectors[r.Sector] = agg
		}
		agg.count++
		agg.total += float64(r.Impact)
	}

	if scored > 0 {
		summary.MeanScore = total / float64(scored)
	}
	summary.Sentiment = scoring.SentimentForScore(summary.MeanScore)

	for sector, agg := range sectors {
		mean := agg.total / float64(agg.count)
		summary.Sectors = append(summary.Sectors, SectorSummary{
			Sector:       sector,
			CompanyCount: agg.count,
			MeanScore:    mean,
			Sentiment:    scoring.SentimentForScore(mean),
		})
	}

	sort.Slice(summary.Sectors, func(i, j int) bool {
		return summary.Sectors[i].MeanScore < summary.Sectors[j].MeanScore
	})

	return summary
}

func extractResults(s state.State) (map[string]scoring.Result, error) {
	val, ok := s.Get(KeyResults)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrAggregateFailed, KeyResults)
	}

	results, ok := val.(map[string]scoring.Result)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not map[string]scoring.Result", ErrAggregateFailed, KeyResults)
	}

	return results, nil
}
