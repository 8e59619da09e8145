package workflow

import (
	"log/slog"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/regpulse/regpulse/internal/documents"
	"github.com/regpulse/regpulse/internal/profiles"
	"github.com/regpulse/regpulse/internal/scoring"
	"github.com/regpulse/regpulse/pkg/storage"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Agent     gaconfig.AgentConfig
	Scoring   scoring.Config
	Storage   storage.System
	Documents documents.System
	Profiles  profiles.System
	Logger    *slog.Logger
}
