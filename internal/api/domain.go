package api

import (
	"fmt"

	"github.com/regpulse/regpulse/internal/analyses"
	"github.com/regpulse/regpulse/internal/documents"
	"github.com/regpulse/regpulse/internal/profiles"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents documents.System
	Analyses  analyses.System
	Profiles  profiles.System
}

// NewDomain creates all domain systems from the API runtime.
// Company profiles load eagerly so a missing or malformed 10-K extract
// fails startup rather than the first analysis.
func NewDomain(runtime *Runtime) (*Domain, error) {
	companies, err := profiles.Load(runtime.Profiles)
	if err != nil {
		return nil, fmt.Errorf("load company profiles: %w", err)
	}

	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Extraction,
		runtime.Logger,
		runtime.Pagination,
	)

	analysesSystem := analyses.New(
		runtime.Database.Connection(),
		runtime.Agent,
		runtime.Scoring,
		runtime.Logger,
		runtime.Pagination,
		runtime.Storage,
		docsSystem,
		companies,
	)

	return &Domain{
		Documents: docsSystem,
		Analyses:  analysesSystem,
		Profiles:  companies,
	}, nil
}
