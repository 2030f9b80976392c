package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"NewsAnalytics/internal/domain"
	"NewsAnalytics/internal/ports"
)

// PostgresRepository persists cleaned article rows into Postgres.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ArticleRepository = (*PostgresRepository)(nil)

// Open connects to Postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// EnsureSchema creates the destination tables and secondary indexes.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return nil
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			id BIGSERIAL PRIMARY KEY,
			source_id TEXT,
			source_name TEXT NOT NULL,
			author TEXT,
			title TEXT NOT NULL,
			description TEXT,
			url TEXT UNIQUE NOT NULL,
			url_to_image TEXT,
			published_at TEXT NOT NULL,
			published_at_parsed TIMESTAMPTZ,
			content TEXT,
			article_type TEXT,
			category TEXT,
			published_date DATE,
			published_year INTEGER,
			published_month INTEGER,
			published_day INTEGER,
			published_hour INTEGER,
			published_day_of_week TEXT,
			published_week INTEGER,
			title_length INTEGER,
			title_word_count INTEGER,
			description_length INTEGER,
			description_word_count INTEGER,
			content_length INTEGER,
			estimated_word_count INTEGER,
			has_image BOOLEAN,
			has_author BOOLEAN,
			content_category TEXT,
			engagement_score INTEGER,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS sources (
			source_name TEXT PRIMARY KEY,
			source_id TEXT,
			total_articles INTEGER DEFAULT 0,
			first_seen TIMESTAMPTZ DEFAULT NOW(),
			last_updated TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS analytics_summary (
			id BIGSERIAL PRIMARY KEY,
			report_date DATE,
			total_articles INTEGER,
			unique_sources INTEGER,
			avg_engagement REAL,
			top_source TEXT,
			peak_hour INTEGER,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source_name)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at_parsed)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_engagement ON articles(engagement_score)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}

var articleColumns = []string{
	"source_id", "source_name", "author", "title", "description",
	"url", "url_to_image", "published_at", "published_at_parsed",
	"content", "article_type", "category",
	"published_date", "published_year", "published_month", "published_day",
	"published_hour", "published_day_of_week", "published_week",
	"title_length", "title_word_count", "description_length",
	"description_word_count", "content_length", "estimated_word_count",
	"has_image", "has_author", "content_category", "engagement_score",
}

const upsertSuffix = `ON CONFLICT (url) DO UPDATE SET
	source_id = EXCLUDED.source_id,
	source_name = EXCLUDED.source_name,
	author = EXCLUDED.author,
	title = EXCLUDED.title,
	description = EXCLUDED.description,
	url_to_image = EXCLUDED.url_to_image,
	published_at = EXCLUDED.published_at,
	published_at_parsed = EXCLUDED.published_at_parsed,
	content = EXCLUDED.content,
	article_type = EXCLUDED.article_type,
	category = EXCLUDED.category,
	published_date = EXCLUDED.published_date,
	published_year = EXCLUDED.published_year,
	published_month = EXCLUDED.published_month,
	published_day = EXCLUDED.published_day,
	published_hour = EXCLUDED.published_hour,
	published_day_of_week = EXCLUDED.published_day_of_week,
	published_week = EXCLUDED.published_week,
	title_length = EXCLUDED.title_length,
	title_word_count = EXCLUDED.title_word_count,
	description_length = EXCLUDED.description_length,
	description_word_count = EXCLUDED.description_word_count,
	content_length = EXCLUDED.content_length,
	estimated_word_count = EXCLUDED.estimated_word_count,
	has_image = EXCLUDED.has_image,
	has_author = EXCLUDED.has_author,
	content_category = EXCLUDED.content_category,
	engagement_score = EXCLUDED.engagement_score,
	updated_at = NOW()`

// SaveArticles upserts every record by url and reports how many were written.
func (r *PostgresRepository) SaveArticles(ctx context.Context, rows *domain.RowSet) (int, error) {
	if r.db == nil || rows.Len() == 0 {
		return 0, nil
	}

	saved := 0
	for _, rec := range rows.Records {
		query := r.builder.
			Insert("articles").
			Columns(articleColumns...).
			Values(
				rec.SourceID, rec.SourceName, rec.Author, rec.Title, rec.Description,
				rec.URL, rec.URLToImage, rec.PublishedAt, rec.PublishedAtParsed,
				rec.Content, rec.ArticleType, rec.Category,
				nullableDate(rec.PublishedDate), rec.PublishedYear, rec.PublishedMonth, rec.PublishedDay,
				rec.PublishedHour, rec.PublishedDayOfWeek, rec.PublishedWeek,
				rec.TitleLength, rec.TitleWordCount, rec.DescriptionLength,
				rec.DescriptionWordCount, rec.ContentLength, rec.EstimatedWordCount,
				rec.HasImage, rec.HasAuthor, rec.ContentCategory, rec.EngagementScore,
			).
			Suffix(upsertSuffix)

		sqlText, args, err := query.ToSql()
		if err != nil {
			return saved, fmt.Errorf("build upsert: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, sqlText, args...); err != nil {
			return saved, fmt.Errorf("upsert article %s: %w", rec.URL, err)
		}
		saved++
	}

	return saved, nil
}

func nullableDate(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// UpdateSourceStats rolls up per-source article counts into the sources table.
func (r *PostgresRepository) UpdateSourceStats(ctx context.Context) error {
	if r.db == nil {
		return nil
	}

	query := r.builder.
		Insert("sources").
		Columns("source_name", "source_id", "total_articles", "last_updated").
		Select(sq.
			Select("source_name", "MAX(source_id)", "COUNT(*)", "NOW()").
			From("articles").
			GroupBy("source_name")).
		Suffix(`ON CONFLICT (source_name) DO UPDATE SET
			source_id = EXCLUDED.source_id,
			total_articles = EXCLUDED.total_articles,
			last_updated = NOW()`)

	sqlText, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build source stats: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, sqlText, args...); err != nil {
		return fmt.Errorf("update source stats: %w", err)
	}

	return nil
}

// CreateAnalyticsSummary inserts a daily rollup row for BI dashboards.
func (r *PostgresRepository) CreateAnalyticsSummary(ctx context.Context) error {
	if r.db == nil {
		return nil
	}

	query := `INSERT INTO analytics_summary
		(report_date, total_articles, unique_sources, avg_engagement, top_source, peak_hour)
	SELECT
		CURRENT_DATE,
		COUNT(*),
		COUNT(DISTINCT source_name),
		AVG(engagement_score),
		(SELECT source_name FROM articles GROUP BY source_name ORDER BY COUNT(*) DESC LIMIT 1),
		(SELECT published_hour FROM articles GROUP BY published_hour ORDER BY COUNT(*) DESC LIMIT 1)
	FROM articles
	WHERE published_date = CURRENT_DATE`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create analytics summary: %w", err)
	}

	return nil
}

// Stats returns current database statistics for run reporting.
func (r *PostgresRepository) Stats(ctx context.Context) (domain.DatabaseStats, error) {
	var stats domain.DatabaseStats
	if r.db == nil {
		return stats, nil
	}

	sqlText, args, err := r.builder.
		Select(
			"COUNT(*)",
			"COUNT(DISTINCT source_name)",
			"MIN(published_at_parsed)",
			"MAX(published_at_parsed)",
		).
		From("articles").
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("build stats query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, sqlText, args...)
	if err := row.Scan(&stats.TotalArticles, &stats.UniqueSources, &stats.MinPublishedAt, &stats.MaxPublishedAt); err != nil {
		return stats, fmt.Errorf("scan stats: %w", err)
	}

	recentText, recentArgs, err := r.builder.
		Select("COUNT(*)").
		From("articles").
		Where(sq.Expr("published_at_parsed >= NOW() - INTERVAL '7 days'")).
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("build recent query: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, recentText, recentArgs...).Scan(&stats.RecentArticles); err != nil {
		return stats, fmt.Errorf("scan recent count: %w", err)
	}

	return stats, nil
}
