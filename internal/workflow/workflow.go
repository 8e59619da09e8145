package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/regpulse/regpulse/internal/scoring"
)

// Execute runs the impact analysis workflow for a single document. It builds
// the state graph (init → score → aggregate), executes it, and extracts the
// WorkflowResult from the final state.
func Execute(ctx context.Context, rt *Runtime, documentID uuid.UUID) (*WorkflowResult, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyDocumentID, documentID)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractWorkflowResult(rt, finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("regpulse-analyze")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("init", InitNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("score", ScoreNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("aggregate", AggregateNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("init", "score", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("score", "aggregate", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("init"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("aggregate"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractWorkflowResult(rt *Runtime, s state.State) (*WorkflowResult, error) {
	documentID, err := extractDocumentID(s)
	if err != nil {
		return nil, err
	}

	filenameVal, ok := s.Get(KeyFilename)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyFilename)
	}

	filename, ok := filenameVal.(string)
	if !ok {
		return nil, fmt.Errorf("%s is not string", KeyFilename)
	}

	results, err := extractResults(s)
	if err != nil {
		return nil, err
	}

	summaryVal, ok := s.Get(KeySummary)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeySummary)
	}

	summary, ok := summaryVal.(Summary)
	if !ok {
		return nil, fmt.Errorf("%s is not Summary", KeySummary)
	}

	mode := rt.Scoring.Mode
	if modeVal, ok := s.Get(KeyMode); ok {
		if m, ok := modeVal.(scoring.Mode); ok {
			mode = m
		}
	}

	return &WorkflowResult{
		DocumentID:  documentID,
		Filename:    filename,
		Mode:        mode,
		Results:     results,
		Summary:     summary,
		CompletedAt: time.Now(),
	}, nil
}
