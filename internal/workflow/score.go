package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/regpulse/regpulse/internal/scoring"
)

// ScoreNode returns a state node that fans the document out over every
// loaded company profile through the batch scorer. The scorer is built per
// execution from the configured mode; an agent run against an unreachable
// endpoint degrades to a synthetic rerun, and the mode recorded in state
// reflects the scorer that actually produced the results.
func ScoreNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		input, err := extractInput(s)
		if err != nil {
			return s, fmt.Errorf("score: %w", err)
		}

		scorer, err := scoring.NewScorer(rt.Scoring, rt.Agent)
		if err != nil {
			return s, fmt.Errorf("score: %w: %w", ErrScoreFailed, err)
		}

		batch := scoring.NewBatch(rt.Scoring, scorer, rt.Logger)
		results, mode, err := batch.RunWithFallback(ctx, input, rt.Profiles.All())
		if err != nil {
			return s, fmt.Errorf("score: %w: %w", ErrScoreFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "score node complete",
			"entity_count", len(results),
			"mode", mode,
		)

		s = s.Set(KeyResults, results)
		s = s.Set(KeyMode, mode)
		return s, nil
	})
}

func extractInput(s state.State) (scoring.Input, error) {
	val, ok := s.Get(KeyInput)
	if !ok {
		return scoring.Input{}, fmt.Errorf("%w: missing %s in state", ErrScoreFailed, KeyInput)
	}

	input, ok := val.(scoring.Input)
	if !ok {
		return scoring.Input{}, fmt.Errorf("%w: %s is not scoring.Input", ErrScoreFailed, KeyInput)
	}

	return input, nil
}
