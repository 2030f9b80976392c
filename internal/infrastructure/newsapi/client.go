package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"NewsAnalytics/internal/config"
	"NewsAnalytics/internal/domain"
)

// Client talks to the NewsAPI REST endpoints. Requests are rate limited
// to stay inside the free-tier allowance.
type Client struct {
	baseURL  string
	apiKey   string
	pageSize int
	maxPages int
	language string
	sortBy   string

	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient wires an HTTP client; pageSize defaults to 100 and maxPages to 5.
func NewClient(cfg config.NewsAPIConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 5
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		pageSize:   pageSize,
		maxPages:   maxPages,
		language:   cfg.Language,
		sortBy:     cfg.SortBy,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

type apiSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiArticle struct {
	Source      apiSource `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt string    `json:"publishedAt"`
	Content     string    `json:"content"`
}

type apiResponse struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
	Articles     []apiArticle `json:"articles"`
}

// fetchPage performs one rate-limited GET against an endpoint path.
func (c *Client) fetchPage(ctx context.Context, endpoint string, params url.Values) (*apiResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsAnalytics/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || parsed.Status == "error" {
		return nil, fmt.Errorf("newsapi %s: %s %s", resp.Status, parsed.Code, parsed.Message)
	}

	return &parsed, nil
}

// paginate walks result pages until an empty or short page, a page cap,
// or an upstream error.
func (c *Client) paginate(ctx context.Context, endpoint string, params url.Values, pages int) ([]apiArticle, error) {
	if pages <= 0 || pages > c.maxPages {
		pages = c.maxPages
	}

	var collected []apiArticle
	for page := 1; page <= pages; page++ {
		params.Set("page", fmt.Sprintf("%d", page))
		params.Set("pageSize", fmt.Sprintf("%d", c.pageSize))

		resp, err := c.fetchPage(ctx, endpoint, params)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if len(resp.Articles) == 0 {
			break
		}

		collected = append(collected, resp.Articles...)

		if len(resp.Articles) < c.pageSize {
			break
		}
	}

	return collected, nil
}

// flatten converts one nested API article into a flat record, computing
// the extraction-time metrics the downstream stages expect.
func flatten(article apiArticle, articleType, category string) domain.Article {
	rec := domain.Article{
		SourceID:    article.Source.ID,
		SourceName:  article.Source.Name,
		Author:      article.Author,
		Title:       article.Title,
		Description: article.Description,
		URL:         article.URL,
		URLToImage:  article.URLToImage,
		PublishedAt: article.PublishedAt,
		Content:     article.Content,
		ArticleType: articleType,
		Category:    category,
	}

	rec.ContentLength = len(rec.Content)
	rec.EstimatedWordCount = len(strings.Fields(rec.Content))
	rec.HasImage = rec.URLToImage != ""
	rec.HasAuthor = strings.TrimSpace(rec.Author) != ""

	return rec
}
