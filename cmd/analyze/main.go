// Command analyze runs the impact scoring pipeline against a local document
// without the HTTP service or database: extract, validate, score every
// company profile, and write the JSON report and recommendations CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/regpulse/regpulse/internal/config"
	"github.com/regpulse/regpulse/internal/extraction"
	"github.com/regpulse/regpulse/internal/profiles"
	"github.com/regpulse/regpulse/internal/reports"
	"github.com/regpulse/regpulse/internal/scoring"
	"github.com/regpulse/regpulse/internal/workflow"
)

const (
	resultsFile         = "impact_analysis_results.json"
	recommendationsFile = "recommendations.csv"
)

func main() {
	var (
		document     = flag.String("document", "", "Path to the regulatory document (PDF, HTML, XML, or text)")
		profilesPath = flag.String("profiles", "", "Path to the 10-K extract file (overrides config)")
		out          = flag.String("out", ".", "Output directory for reports")
		sample       = flag.Int("sample", 0, "Limit scoring to the first N companies (0 = all)")
		synthetic    = flag.Bool("synthetic", false, "Use the synthetic scorer instead of the agent")
	)
	flag.Parse()

	if *document == "" {
		fmt.Println("usage: analyze -document <path> [-profiles <path>] [-out <dir>] [-sample N] [-synthetic]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}
	if *profilesPath != "" {
		cfg.Profiles.Path = *profilesPath
	}
	if *synthetic {
		cfg.Scoring.Mode = scoring.ModeSynthetic
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *document, *out, *sample); err != nil {
		log.Fatal(err)
	}
}

func run(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	documentPath, outDir string,
	sample int,
) error {
	data, err := os.ReadFile(documentPath)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	filename := filepath.Base(documentPath)

	text, err := extraction.Extract(data, filename, "")
	if err != nil {
		return fmt.Errorf("extract %s: %w", filename, err)
	}
	if err := cfg.Extraction.Validate(text); err != nil {
		return fmt.Errorf("validate %s: %w", filename, err)
	}

	logger.Info("document extracted",
		"file", filename,
		"chars", len(text),
		"language", extraction.DetectLanguage(text),
		"keywords", len(extraction.MatchKeywords(text)),
	)

	companies, err := profiles.Load(cfg.Profiles)
	if err != nil {
		return fmt.Errorf("load company profiles: %w", err)
	}

	entities := companies.All()
	if sample > 0 && sample < len(entities) {
		entities = entities[:sample]
	}

	scorer, err := scoring.NewScorer(cfg.Scoring, cfg.Agent)
	if err != nil {
		return err
	}

	logger.Info("scoring started",
		"mode", cfg.Scoring.Mode,
		"companies", len(entities),
		"workers", cfg.Scoring.MaxWorkers,
	)

	start := time.Now()
	results, mode, err := scoring.NewBatch(cfg.Scoring, scorer, logger).RunWithFallback(
		ctx,
		scoring.Input{Title: filename, Text: text},
		entities,
	)
	if err != nil {
		return fmt.Errorf("score batch: %w", err)
	}

	summary := workflow.Summarize(results)
	logger.Info("scoring complete",
		"mode", mode,
		"duration", time.Since(start).Round(time.Millisecond),
		"scored", summary.EntityCount,
		"failed", summary.FailedCount,
		"mean_score", fmt.Sprintf("%.2f", summary.MeanScore),
		"sentiment", summary.Sentiment,
	)

	records := reports.Records(results, time.Now())
	recommendations := reports.Recommendations(records)

	if err := writeReports(outDir, records, recommendations); err != nil {
		return err
	}

	logMovers(logger, recommendations)
	return nil
}

func writeReports(outDir string, records []reports.Record, recs []reports.Recommendation) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	jsonPath := filepath.Join(outDir, resultsFile)
	jsonFile, err := os.Create(jsonPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", jsonPath, err)
	}
	defer jsonFile.Close()

	if err := reports.WriteJSON(jsonFile, records); err != nil {
		return err
	}

	csvPath := filepath.Join(outDir, recommendationsFile)
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", csvPath, err)
	}
	defer csvFile.Close()

	return reports.WriteRecommendationsCSV(csvFile, recs)
}

// logMovers reports the most negatively and positively impacted companies.
// Recommendations arrive sorted by mean score ascending.
func logMovers(logger *slog.Logger, recs []reports.Recommendation) {
	if len(recs) == 0 {
		return
	}

	low := recs[0]
	logger.Info("most impacted",
		"ticker", low.Ticker,
		"mean_score", fmt.Sprintf("%.2f", low.MeanScore),
		"recommendation", low.Recommendation,
	)

	high := recs[len(recs)-1]
	if high.Ticker == low.Ticker {
		return
	}
	logger.Info("most favorable",
		"ticker", high.Ticker,
		"mean_score", fmt.Sprintf("%.2f", high.MeanScore),
		"recommendation", high.Recommendation,
	)
}
