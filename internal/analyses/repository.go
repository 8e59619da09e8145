package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/regpulse/regpulse/internal/documents"
	"github.com/regpulse/regpulse/internal/profiles"
	"github.com/regpulse/regpulse/internal/scoring"
	"github.com/regpulse/regpulse/internal/workflow"
	"github.com/regpulse/regpulse/pkg/pagination"
	"github.com/regpulse/regpulse/pkg/query"
	"github.com/regpulse/regpulse/pkg/repository"
	"github.com/regpulse/regpulse/pkg/storage"
)

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an analysis repository implementing the System interface.
// It internally constructs the workflow runtime from the provided dependencies.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	scoringCfg scoring.Config,
	logger *slog.Logger,
	pagination pagination.Config,
	storage storage.System,
	docs documents.System,
	companies profiles.System,
) System {
	rt := &workflow.Runtime{
		Agent:     agent,
		Scoring:   scoringCfg,
		Storage:   storage,
		Documents: docs,
		Profiles:  companies,
		Logger:    logger.With("workflow", "analyze"),
	}
	return &repo{
		db:         db,
		rt:         rt,
		logger:     logger.With("system", "analyses"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Analysis], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Mode", "ModelName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) FindByDocument(ctx context.Context, documentID uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("DocumentID", documentID)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

// Analyze executes the scoring workflow for a document and persists the run.
// The analysis row is upserted per document, per-entity scores are replaced,
// and the document status flips to analyzed, all in one transaction.
func (r *repo) Analyze(ctx context.Context, documentID uuid.UUID) (*Analysis, error) {
	result, err := workflow.Execute(ctx, r.rt, documentID)
	if err != nil {
		return nil, fmt.Errorf("analyze document %s: %w", documentID, err)
	}

	upsertQ := `
		INSERT INTO analyses(
			document_id, mode, model_name, provider_name,
			entity_count, failed_count, mean_score, sentiment
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (document_id) DO UPDATE SET
			mode = EXCLUDED.mode,
			model_name = EXCLUDED.model_name,
			provider_name = EXCLUDED.provider_name,
			entity_count = EXCLUDED.entity_count,
			failed_count = EXCLUDED.failed_count,
			mean_score = EXCLUDED.mean_score,
			sentiment = EXCLUDED.sentiment,
			analyzed_at = NOW()
		RETURNING id, document_id, mode, model_name, provider_name,
				  entity_count, failed_count, mean_score, sentiment, analyzed_at`

	upsertArgs := []any{
		documentID,
		string(result.Mode),
		modelName(r.rt.Agent),
		providerName(r.rt.Agent),
		result.Summary.EntityCount,
		result.Summary.FailedCount,
		result.Summary.MeanScore,
		string(result.Summary.Sentiment),
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		an, err := repository.QueryOne(ctx, tx, upsertQ, upsertArgs, scanAnalysis)
		if err != nil {
			return Analysis{}, fmt.Errorf("upsert analysis: %w", err)
		}

		if err := replaceScores(ctx, tx, an.ID, result.Results); err != nil {
			return Analysis{}, err
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE documents SET status = 'analyzed', updated_at = NOW() WHERE id = $1",
			documentID,
		); err != nil {
			return Analysis{}, fmt.Errorf("update document status: %w", err)
		}

		return an, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document analyzed",
		"id", a.ID,
		"document_id", documentID,
		"mode", a.Mode,
		"entity_count", a.EntityCount,
		"failed_count", a.FailedCount,
		"mean_score", a.MeanScore,
	)
	return &a, nil
}

func (r *repo) Scores(ctx context.Context, id uuid.UUID) ([]Score, error) {
	// ensure a missing analysis surfaces as 404 rather than an empty list
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	qb := query.NewBuilder(scoreProjection, scoreSort)
	qb.WhereEquals("AnalysisID", &id)

	q, args := qb.Build()
	scores, err := repository.QueryMany(ctx, r.db, q, args, scanScore)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}

	return scores, nil
}

func (r *repo) Summary(ctx context.Context, id uuid.UUID) (*workflow.Summary, error) {
	scores, err := r.Scores(ctx, id)
	if err != nil {
		return nil, err
	}

	results := make(map[string]scoring.Result, len(scores))
	for _, s := range scores {
		results[s.Ticker] = s.Result()
	}

	summary := workflow.Summarize(results)
	return &summary, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM analyses WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("analysis deleted", "id", id)
	return nil
}

// replaceScores swaps the full per-entity score set for an analysis within
// the surrounding transaction. Insertion order is fixed by ticker so
// re-analysis writes rows deterministically.
func replaceScores(
	ctx context.Context,
	tx *sql.Tx,
	analysisID uuid.UUID,
	results map[string]scoring.Result,
) error {
	if _, err := tx.ExecContext(
		ctx,
		"DELETE FROM scores WHERE analysis_id = $1",
		analysisID,
	); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}

	tickers := make([]string, 0, len(results))
	for ticker := range results {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	insertQ := `
		INSERT INTO scores(
			analysis_id, ticker, company_name, sector, impact_score,
			sentiment, reliability, reasons, explanation, failed, failure_reason
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	for _, ticker := range tickers {
		res := results[ticker]

		reasonsJSON, err := json.Marshal(res.Reasons)
		if err != nil {
			return fmt.Errorf("marshal reasons for %s: %w", ticker, err)
		}

		var failureReason *string
		if res.FailureReason != "" {
			failureReason = &res.FailureReason
		}

		if _, err := tx.ExecContext(ctx, insertQ,
			analysisID,
			res.Ticker,
			res.CompanyName,
			res.Sector,
			res.Impact,
			string(res.Sentiment),
			res.Reliability,
			reasonsJSON,
			res.Explanation,
			res.Failed,
			failureReason,
		); err != nil {
			return fmt.Errorf("insert score for %s: %w", ticker, err)
		}
	}

	return nil
}

func modelName(cfg gaconfig.AgentConfig) string {
	if cfg.Model != nil {
		return cfg.Model.Name
	}
	return ""
}

func providerName(cfg gaconfig.AgentConfig) string {
	if cfg.Provider != nil {
		return cfg.Provider.Name
	}
	return ""
}
