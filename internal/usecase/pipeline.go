package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"NewsAnalytics/internal/analysis"
	"NewsAnalytics/internal/cleaning"
	"NewsAnalytics/internal/ports"
	"NewsAnalytics/internal/validation"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source         ports.ArticleSource
	Repository     ports.ArticleRepository
	Exporter       ports.DatasetExporter
	Reports        ports.ReportSink
	EngagementSeed int64
	Logger         *slog.Logger
}

// Pipeline implements the extract-clean-validate-analyze-load workflow.
// Repository, exporter, and report sink are optional; a missing adapter
// skips its stage.
type Pipeline struct {
	source  ports.ArticleSource
	repo    ports.ArticleRepository
	export  ports.DatasetExporter
	reports ports.ReportSink
	seed    int64
	logger  *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:  deps.Source,
		repo:    deps.Repository,
		export:  deps.Exporter,
		reports: deps.Reports,
		seed:    deps.EngagementSeed,
		logger:  deps.Logger,
	}
}

// Run executes one full batch: fetch, clean, validate, analyze, persist,
// export, report. A batch that cleans to zero rows is a valid run.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.source == nil {
		return nil
	}

	runID := uuid.NewString()[:8]
	p.info("pipeline run starting", "run", runID)

	start := time.Now()
	raw, err := p.source.FetchBatch(ctx)
	if err != nil {
		return fmt.Errorf("fetch batch: %w", err)
	}
	p.info("extraction done", "run", runID, "records", raw.Len(), "took", time.Since(start).Round(time.Millisecond))

	start = time.Now()
	cleaned, log, err := cleaning.NewCleanerWithSeed(raw, p.seed).Clean()
	if err != nil {
		return fmt.Errorf("clean batch: %w", err)
	}
	p.info("cleaning done", "run", runID,
		"records", cleaned.Len(), "log_entries", len(log), "took", time.Since(start).Round(time.Millisecond))

	start = time.Now()
	report := validation.NewValidator(cleaned).Validate()
	p.info("validation done", "run", runID,
		"quality_score", report.QualityScore, "took", time.Since(start).Round(time.Millisecond))

	start = time.Now()
	results := analysis.NewAnalyzer(cleaned).Analyze()
	p.info("analysis done", "run", runID,
		"sources", results.Sources.TotalSources, "took", time.Since(start).Round(time.Millisecond))

	if p.repo != nil && cleaned.Len() > 0 {
		start = time.Now()
		if err := p.repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		saved, err := p.repo.SaveArticles(ctx, cleaned)
		if err != nil {
			return fmt.Errorf("save articles: %w", err)
		}
		if err := p.repo.UpdateSourceStats(ctx); err != nil {
			return fmt.Errorf("update source stats: %w", err)
		}
		if err := p.repo.CreateAnalyticsSummary(ctx); err != nil {
			return fmt.Errorf("create analytics summary: %w", err)
		}
		stats, err := p.repo.Stats(ctx)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		p.info("loading done", "run", runID,
			"saved", saved, "total_in_store", stats.TotalArticles, "took", time.Since(start).Round(time.Millisecond))
	} else {
		p.info("loading skipped", "run", runID, "records", cleaned.Len())
	}

	if p.export != nil && cleaned.Len() > 0 {
		paths, err := p.export.ExportDatasets(ctx)
		if err != nil {
			return fmt.Errorf("export datasets: %w", err)
		}
		p.info("export done", "run", runID, "files", len(paths))
	}

	if p.reports != nil {
		if _, err := p.reports.WriteCleaningReport(runID, log); err != nil {
			return fmt.Errorf("write cleaning report: %w", err)
		}
		if _, err := p.reports.WriteValidationReport(runID, report); err != nil {
			return fmt.Errorf("write validation report: %w", err)
		}
		if _, err := p.reports.WriteAnalysisReport(runID, results); err != nil {
			return fmt.Errorf("write analysis report: %w", err)
		}
	}

	p.info("pipeline run finished", "run", runID, "records", cleaned.Len())
	return nil
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
