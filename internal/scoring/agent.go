package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/regpulse/regpulse/internal/profiles"
	"github.com/regpulse/regpulse/internal/prompts"
	"github.com/regpulse/regpulse/pkg/formatting"
)

// agentResponse mirrors the JSON object the model is instructed to return.
type agentResponse struct {
	ImpactScore float64  `json:"impact_score"`
	Sentiment   string   `json:"sentiment"`
	Reliability float64  `json:"reliability"`
	Reasons     []string `json:"reasons"`
	Explanation string   `json:"explanation"`
}

// AgentScorer scores companies through the configured inference model.
// Each call creates its own agent so concurrent scoring never shares
// transport state.
type AgentScorer struct {
	cfg gaconfig.AgentConfig
}

func NewAgentScorer(cfg gaconfig.AgentConfig) *AgentScorer {
	return &AgentScorer{cfg: cfg}
}

// Score composes the impact-analysis prompt, sends it to the model, and
// validates the parsed response into a Result.
func (s *AgentScorer) Score(
	ctx context.Context,
	input Input,
	profile profiles.Profile,
) (Result, error) {
	a, err := agent.New(&s.cfg)
	if err != nil {
		return Result{}, fmt.Errorf("create agent: %w", err)
	}

	prompt := prompts.Compose(prompts.Regulation{
		Name:         input.Title,
		Requirements: input.Text,
	}, profile)

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("chat call: %w", err)
	}

	parsed, err := formatting.Parse[agentResponse](resp.Content())
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return buildResult(profile, parsed), nil
}

func buildResult(profile profiles.Profile, resp agentResponse) Result {
	impact := ClampImpact(int(math.Round(resp.ImpactScore)))

	sentiment := Sentiment(strings.ToUpper(strings.TrimSpace(resp.Sentiment)))
	switch sentiment {
	case VeryNegative, Negative, Neutral, Positive, VeryPositive:
	default:
		sentiment = SentimentForScore(float64(impact))
	}

	reliability := resp.Reliability
	if reliability < 0 {
		reliability = 0
	}
	if reliability > 1 {
		reliability = 1
	}

	reasons := resp.Reasons
	if len(reasons) > 2 {
		reasons = reasons[:2]
	}

	return Result{
		Ticker:      profile.Ticker,
		CompanyName: profile.CompanyName,
		Sector:      profile.Sector,
		Impact:      impact,
		Sentiment:   sentiment,
		Reliability: reliability,
		Reasons:     reasons,
		Explanation: resp.Explanation,
	}
}

// isRetryable reports whether a scoring failure is worth another attempt:
// timeouts, transient network errors, rate limiting, and malformed model
// responses. Context cancellation from the caller is terminal.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrMalformedResponse) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"rate limit", "too many requests", "429",
		"connection refused", "connection reset", "unavailable", "503",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
