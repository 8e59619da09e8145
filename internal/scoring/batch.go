package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"golang.org/x/sync/errgroup"

	"github.com/regpulse/regpulse/internal/profiles"
)

// Batch fans a document out over company profiles with bounded concurrency.
// Every profile is attempted; a failing entity is recorded as a neutral
// failed result and never aborts the rest of the batch.
type Batch struct {
	cfg    Config
	scorer Scorer
	logger *slog.Logger
}

func NewBatch(cfg Config, scorer Scorer, logger *slog.Logger) *Batch {
	return &Batch{
		cfg:    cfg,
		scorer: scorer,
		logger: logger.With("system", "scoring"),
	}
}

// NewScorer constructs the scorer selected by cfg.Mode.
func NewScorer(cfg Config, agentCfg gaconfig.AgentConfig) (Scorer, error) {
	switch cfg.Mode {
	case ModeSynthetic:
		return NewSyntheticScorer(), nil
	case ModeAgent:
		return NewAgentScorer(agentCfg), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, cfg.Mode)
	}
}

// Run scores input against every profile and returns results keyed by
// ticker. Returns an error only for batch-level failures: duplicate tickers
// or caller cancellation.
func (b *Batch) Run(
	ctx context.Context,
	input Input,
	entities []profiles.Profile,
) (map[string]Result, error) {
	results := make(map[string]Result, len(entities))

	seen := make(map[string]bool, len(entities))
	for _, p := range entities {
		if seen[p.Ticker] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTicker, p.Ticker)
		}
		seen[p.Ticker] = true
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.MaxWorkers)

	for _, p := range entities {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			result := b.scoreWithRetries(gctx, input, p)

			mu.Lock()
			results[p.Ticker] = result
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch aborted: %w", err)
	}

	return results, nil
}

// RunWithFallback scores like Run and then inspects the outcome. When the
// configured mode is agent and every entity failed, the inference endpoint
// is treated as unreachable and the whole batch reruns through the synthetic
// scorer. The returned mode identifies the scorer that produced the results.
func (b *Batch) RunWithFallback(
	ctx context.Context,
	input Input,
	entities []profiles.Profile,
) (map[string]Result, Mode, error) {
	results, err := b.Run(ctx, input, entities)
	if err != nil {
		return nil, "", err
	}

	if b.cfg.Mode != ModeAgent || !allFailed(results) {
		return results, b.cfg.Mode, nil
	}

	b.logger.Warn(
		"every entity failed, rerunning batch synthetically",
		"entity_count", len(entities),
	)

	fallback := &Batch{cfg: b.cfg, scorer: NewSyntheticScorer(), logger: b.logger}
	results, err = fallback.Run(ctx, input, entities)
	if err != nil {
		return nil, "", err
	}

	return results, ModeSynthetic, nil
}

// allFailed reports whether a non-empty result set contains no successful
// entity.
func allFailed(results map[string]Result) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if !r.Failed {
			return false
		}
	}
	return true
}

// scoreWithRetries attempts one entity up to 1+MaxRetries times, applying
// the per-call timeout on every attempt and waiting between retries. On
// exhaustion it degrades to a neutral failed result.
func (b *Batch) scoreWithRetries(
	ctx context.Context,
	input Input,
	p profiles.Profile,
) Result {
	var lastErr error

	for attempt := 0; attempt <= b.cfg.MaxRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, b.cfg.CallTimeoutDuration())
		result, err := b.scorer.Score(callCtx, input, p)
		cancel()

		if err == nil {
			return result
		}
		lastErr = err

		b.logger.Warn(
			"score attempt failed",
			"ticker", p.Ticker,
			"attempt", attempt+1,
			"error", err,
		)

		if ctx.Err() != nil || !isRetryable(err) || attempt == b.cfg.MaxRetries {
			break
		}

		if !wait(ctx, b.cfg.RetryWaitDuration()) {
			break
		}
	}

	return failedResult(p, lastErr)
}

// failedResult is the neutral placeholder recorded when scoring an entity
// gives up.
func failedResult(p profiles.Profile, err error) Result {
	return Result{
		Ticker:        p.Ticker,
		CompanyName:   p.CompanyName,
		Sector:        p.Sector,
		Impact:        0,
		Sentiment:     Neutral,
		Reliability:   0,
		Failed:        true,
		FailureReason: err.Error(),
	}
}

func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
