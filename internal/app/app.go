package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"NewsAnalytics/internal/config"
	"NewsAnalytics/internal/extract"
	"NewsAnalytics/internal/infrastructure/export"
	"NewsAnalytics/internal/infrastructure/newsapi"
	"NewsAnalytics/internal/infrastructure/report"
	"NewsAnalytics/internal/infrastructure/scheduler"
	"NewsAnalytics/internal/infrastructure/storage"
	"NewsAnalytics/internal/logging"
	"NewsAnalytics/internal/ports"
	"NewsAnalytics/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	db       *sql.DB
}

// New builds a runnable application instance. The database is optional:
// without a reachable DSN the pipeline still cleans, validates, and
// writes reports.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client := newsapi.NewClient(cfg.NewsAPI, nil)

	registry := extract.NewRegistry()
	registry.Register(newsapi.NewTopHeadlinesStrategy(client))
	registry.Register(newsapi.NewEverythingStrategy(client))

	source := newsapi.NewStrategySource(registry, cfg.Feeds, baseLogger.With("component", "source"))

	var (
		db       *sql.DB
		repo     ports.ArticleRepository
		exporter ports.DatasetExporter
	)
	if cfg.Database.DSN != "" {
		handle, err := storage.Open(cfg.Database.DSN)
		if err != nil {
			baseLogger.Warn("database unavailable, persistence disabled", "error", err)
		} else {
			db = handle
			repo = storage.NewPostgresRepository(db)
			exporter = export.NewCSVExporter(db, cfg.Reports.ExportDir)
		}
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:         source,
		Repository:     repo,
		Exporter:       exporter,
		Reports:        report.NewFileReportSink(cfg.Reports.ReportDir),
		EngagementSeed: cfg.Pipeline.EngagementSeed,
		Logger:         baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, db: db}
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}
	return a.pipeline.Run(ctx)
}

// RunRecurring executes the pipeline on the configured interval, starting
// immediately, and blocks until the context ends.
func (a *Application) RunRecurring(ctx context.Context) error {
	driver := scheduler.NewIntervalScheduler(a.cfg.Scheduler.Period())
	runner := usecase.NewScheduler(driver, a.pipeline)

	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	<-ctx.Done()
	return runner.Stop(context.Background())
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
