package api

import (
	"net/http"

	"github.com/regpulse/regpulse/internal/config"
	"github.com/regpulse/regpulse/internal/profiles"
	"github.com/regpulse/regpulse/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	profilesHandler := profiles.NewHandler(
		domain.Profiles,
		runtime.Logger,
		runtime.Pagination,
	)

	storageHandler := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		cfg.Storage.MaxListSize,
	)

	routes.Register(
		mux,
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Analyses.Handler().Routes(),
		profilesHandler.Routes(),
		storageHandler.routes(),
	)
}
