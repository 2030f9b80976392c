package ports

import (
	"context"
	"time"

	"NewsAnalytics/internal/analysis"
	"NewsAnalytics/internal/domain"
	"NewsAnalytics/internal/validation"
)

// ArticleSource pulls a fully materialized batch of flattened records
// from upstream providers.
type ArticleSource interface {
	FetchBatch(ctx context.Context) (*domain.RowSet, error)
}

// ArticleRepository persists the cleaned row set and derived rollups.
type ArticleRepository interface {
	EnsureSchema(ctx context.Context) error
	SaveArticles(ctx context.Context, rows *domain.RowSet) (int, error)
	UpdateSourceStats(ctx context.Context) error
	CreateAnalyticsSummary(ctx context.Context) error
	Stats(ctx context.Context) (domain.DatabaseStats, error)
}

// DatasetExporter writes persisted tables out as CSV datasets for BI tools.
type DatasetExporter interface {
	ExportDatasets(ctx context.Context) ([]string, error)
}

// ReportSink records run artifacts: the cleaning log, the validation
// report, and analysis results.
type ReportSink interface {
	WriteCleaningReport(runID string, log []string) (string, error)
	WriteValidationReport(runID string, report validation.Report) (string, error)
	WriteAnalysisReport(runID string, results analysis.Results) (string, error)
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
