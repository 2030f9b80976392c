package newsapi

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"NewsAnalytics/internal/domain"
	"NewsAnalytics/internal/extract"
)

// TopHeadlinesStrategy pages through the top-headlines endpoint for a
// category and country.
type TopHeadlinesStrategy struct {
	client *Client
}

var _ extract.Strategy = (*TopHeadlinesStrategy)(nil)

// NewTopHeadlinesStrategy binds the strategy to a shared API client.
func NewTopHeadlinesStrategy(client *Client) *TopHeadlinesStrategy {
	return &TopHeadlinesStrategy{client: client}
}

// Name identifies the strategy inside the registry.
func (s *TopHeadlinesStrategy) Name() string {
	return "top_headlines"
}

// Fetch collects headline pages and flattens them into records.
func (s *TopHeadlinesStrategy) Fetch(ctx context.Context, req extract.Request) ([]domain.Article, error) {
	if s.client == nil {
		return nil, fmt.Errorf("top_headlines: no client configured")
	}

	params := url.Values{}
	if req.Category != "" {
		params.Set("category", req.Category)
	}
	country := req.Country
	if country == "" {
		country = "us"
	}
	params.Set("country", country)

	articles, err := s.client.paginate(ctx, "/top-headlines", params, req.Pages)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", req.FeedName, err)
	}

	return flattenAll(articles, "headlines", req.Category), nil
}

// EverythingStrategy pages through the everything search endpoint for a
// query over a rolling day window.
type EverythingStrategy struct {
	client *Client
	now    func() time.Time
}

var _ extract.Strategy = (*EverythingStrategy)(nil)

// NewEverythingStrategy binds the strategy to a shared API client.
func NewEverythingStrategy(client *Client) *EverythingStrategy {
	return &EverythingStrategy{client: client, now: time.Now}
}

// Name identifies the strategy inside the registry.
func (s *EverythingStrategy) Name() string {
	return "everything"
}

// Fetch collects search pages and flattens them into records.
func (s *EverythingStrategy) Fetch(ctx context.Context, req extract.Request) ([]domain.Article, error) {
	if s.client == nil {
		return nil, fmt.Errorf("everything: no client configured")
	}
	if req.Query == "" {
		return nil, fmt.Errorf("feed %s: everything strategy requires a query", req.FeedName)
	}

	days := req.Days
	if days <= 0 {
		days = 7
	}
	from := s.now().AddDate(0, 0, -days).Format("2006-01-02")

	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("from", from)
	if s.client.language != "" {
		params.Set("language", s.client.language)
	}
	if s.client.sortBy != "" {
		params.Set("sortBy", s.client.sortBy)
	}

	articles, err := s.client.paginate(ctx, "/everything", params, req.Pages)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", req.FeedName, err)
	}

	return flattenAll(articles, "everything", req.Category), nil
}

func flattenAll(articles []apiArticle, articleType, category string) []domain.Article {
	records := make([]domain.Article, 0, len(articles))
	for _, article := range articles {
		records = append(records, flatten(article, articleType, category))
	}
	return records
}
