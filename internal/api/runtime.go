package api

import (
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/regpulse/regpulse/internal/config"
	"github.com/regpulse/regpulse/internal/extraction"
	"github.com/regpulse/regpulse/internal/infrastructure"
	"github.com/regpulse/regpulse/internal/profiles"
	"github.com/regpulse/regpulse/internal/scoring"
	"github.com/regpulse/regpulse/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Agent      gaconfig.AgentConfig
	Scoring    scoring.Config
	Extraction extraction.Config
	Profiles   profiles.Config
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Agent:      cfg.Agent,
		Scoring:    cfg.Scoring,
		Extraction: cfg.Extraction,
		Profiles:   cfg.Profiles,
		Pagination: cfg.API.Pagination,
	}
}
