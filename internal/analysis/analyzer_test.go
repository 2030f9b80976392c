package analysis

import (
	"testing"
	"time"

	"NewsAnalytics/internal/domain"
)

func article(source, category string, hour, engagement int) domain.Article {
	parsed := time.Date(2025, time.June, 1, hour, 0, 0, 0, time.UTC)
	return domain.Article{
		SourceName:         source,
		Title:              "A headline long enough to pass",
		TitleLength:        30,
		TitleWordCount:     6,
		DescriptionLength:  40,
		EstimatedWordCount: 200,
		HasImage:           true,
		HasAuthor:          true,
		ContentCategory:    category,
		EngagementScore:    engagement,
		PublishedAtParsed:  &parsed,
		PublishedDate:      "2025-06-01",
		PublishedHour:      hour,
		PublishedDayOfWeek: "Sunday",
	}
}

func TestAnalyzeEmptyRowSet(t *testing.T) {
	t.Parallel()

	results := NewAnalyzer(domain.NewRowSet(nil)).Analyze()

	if results.BasicStats.TotalArticles != 0 {
		t.Fatalf("total articles: %d", results.BasicStats.TotalArticles)
	}
	if results.Sources.TotalSources != 0 {
		t.Fatalf("total sources: %d", results.Sources.TotalSources)
	}
}

func TestBasicStats(t *testing.T) {
	t.Parallel()

	rows := domain.NewRowSet([]domain.Article{
		article("Reuters", "Finance", 9, 100),
		article("Reuters", "Finance", 10, 300),
		article("BBC News", "Sports", 18, 500),
	})

	results := NewAnalyzer(rows).Analyze()

	basic := results.BasicStats
	if basic.TotalArticles != 3 {
		t.Fatalf("total: %d", basic.TotalArticles)
	}
	if basic.UniqueSources != 2 {
		t.Fatalf("sources: %d", basic.UniqueSources)
	}
	if basic.AvgWordCount != 200 {
		t.Fatalf("avg word count: %v", basic.AvgWordCount)
	}
	if basic.ArticlesWithImages != 3 || basic.ArticlesWithAuthors != 3 {
		t.Fatalf("image/author counts: %d/%d", basic.ArticlesWithImages, basic.ArticlesWithAuthors)
	}
	if basic.DateRangeStart == nil || basic.DateRangeStart.Hour() != 9 {
		t.Fatalf("range start: %v", basic.DateRangeStart)
	}
}

func TestTemporalDistribution(t *testing.T) {
	t.Parallel()

	rows := domain.NewRowSet([]domain.Article{
		article("Reuters", "Finance", 9, 100),
		article("Reuters", "Finance", 9, 300),
		article("BBC News", "Sports", 18, 500),
	})

	results := NewAnalyzer(rows).Analyze()

	if results.Temporal.PeakHour != 9 {
		t.Fatalf("peak hour: %d", results.Temporal.PeakHour)
	}
	if results.Temporal.HourlyDistribution[9] != 2 {
		t.Fatalf("hour 9 count: %d", results.Temporal.HourlyDistribution[9])
	}
	if results.Temporal.DayOfWeek["Sunday"] != 3 {
		t.Fatalf("sunday count: %d", results.Temporal.DayOfWeek["Sunday"])
	}
	if results.Temporal.AvgPerDay != 3 {
		t.Fatalf("avg per day: %v", results.Temporal.AvgPerDay)
	}
}

func TestSourceRanking(t *testing.T) {
	t.Parallel()

	rows := domain.NewRowSet([]domain.Article{
		article("Reuters", "Finance", 9, 100),
		article("Reuters", "Finance", 10, 300),
		article("BBC News", "Sports", 18, 500),
	})

	results := NewAnalyzer(rows).Analyze()

	top := results.Sources.TopByVolume
	if len(top) != 2 {
		t.Fatalf("top sources: %d", len(top))
	}
	if top[0].Source != "Reuters" || top[0].Count != 2 {
		t.Fatalf("top source: %+v", top[0])
	}
	if results.Sources.AvgArticlesPerSource != 1.5 {
		t.Fatalf("avg per source: %v", results.Sources.AvgArticlesPerSource)
	}
}

func TestEngagementSummary(t *testing.T) {
	t.Parallel()

	rows := domain.NewRowSet([]domain.Article{
		article("Reuters", "Finance", 9, 100),
		article("Reuters", "Finance", 10, 300),
		article("BBC News", "Sports", 18, 500),
	})

	results := NewAnalyzer(rows).Analyze()

	eng := results.Engagement
	if eng.Min != 100 || eng.Max != 500 {
		t.Fatalf("min/max: %d/%d", eng.Min, eng.Max)
	}
	if eng.Avg != 300 {
		t.Fatalf("avg: %v", eng.Avg)
	}
	if eng.TopCategory != "Sports" {
		t.Fatalf("top category: %s", eng.TopCategory)
	}

	if results.Content.CategoryDistribution["Finance"] != 2 {
		t.Fatalf("finance count: %d", results.Content.CategoryDistribution["Finance"])
	}
}
