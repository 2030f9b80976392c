package newsapi

import (
	"context"
	"fmt"
	"log/slog"

	"NewsAnalytics/internal/config"
	"NewsAnalytics/internal/domain"
	"NewsAnalytics/internal/extract"
	"NewsAnalytics/internal/ports"
)

// StrategySource implements ArticleSource via registered fetch strategies.
// Feed order is preserved in the aggregated row set so downstream
// first-wins deduplication stays deterministic.
type StrategySource struct {
	registry *extract.Registry
	feeds    []config.FeedConfig
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// NewStrategySource wires the strategy registry with config-defined feeds.
func NewStrategySource(reg *extract.Registry, feeds []config.FeedConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		feeds:    feeds,
		logger:   log,
	}
}

// FetchBatch iterates over configured feeds and executes their strategies.
func (s *StrategySource) FetchBatch(ctx context.Context) (*domain.RowSet, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("strategy registry is not configured")
	}

	s.debug("fetch batch", "feeds", len(s.feeds))

	var aggregated []domain.Article
	for _, feed := range s.feeds {
		s.debug("process feed", "feed", feed.Name, "strategy", feed.Strategy)

		strategy, err := s.registry.Resolve(feed.Strategy)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", feed.Name, err)
		}

		req := extract.Request{
			FeedName: feed.Name,
			Category: feed.Category,
			Country:  feed.Country,
			Query:    feed.Query,
			Days:     feed.Days,
			Pages:    feed.Pages,
		}

		results, err := strategy.Fetch(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("fetch feed %s: %w", feed.Name, err)
		}

		s.debug("feed produced articles", "feed", feed.Name, "count", len(results))
		aggregated = append(aggregated, results...)
	}

	s.debug("strategy source done", "total_articles", len(aggregated))
	return domain.NewRowSet(aggregated), nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
