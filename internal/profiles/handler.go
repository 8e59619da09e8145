package profiles

import (
	"log/slog"
	"net/http"

	"github.com/regpulse/regpulse/pkg/handlers"
	"github.com/regpulse/regpulse/pkg/pagination"
	"github.com/regpulse/regpulse/pkg/routes"
)

// Handler provides HTTP endpoints for company profile lookups.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "profiles"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for profile endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/profiles",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{ticker}", Handler: h.Find},
		},
	}
}

// List returns a paginated list of profiles with optional search over
// ticker, company name, and sector.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	search := ""
	if page.Search != nil {
		search = *page.Search
	}

	handlers.RespondJSON(w, http.StatusOK, h.sys.List(page, search))
}

// Find returns a single profile by ticker path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	profile, err := h.sys.Find(r.PathValue("ticker"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profile)
}
