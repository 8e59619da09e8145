package analyses

import (
	"context"

	"github.com/google/uuid"

	"github.com/regpulse/regpulse/internal/workflow"
	"github.com/regpulse/regpulse/pkg/pagination"
)

// System defines the public contract for analysis domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Analysis], error)

	Find(ctx context.Context, id uuid.UUID) (*Analysis, error)
	FindByDocument(ctx context.Context, documentID uuid.UUID) (*Analysis, error)
	Analyze(ctx context.Context, documentID uuid.UUID) (*Analysis, error)
	Scores(ctx context.Context, id uuid.UUID) ([]Score, error)
	Summary(ctx context.Context, id uuid.UUID) (*workflow.Summary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
