package validation

import (
	"testing"
	"time"

	"NewsAnalytics/internal/domain"
)

func ts(value string) *time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	parsed = parsed.UTC()
	return &parsed
}

func cleanArticle(url, title string) domain.Article {
	return domain.Article{
		SourceName:         "Example News",
		Author:             "Jane Doe",
		Title:              title,
		Description:        "A longer description of the story.",
		URL:                url,
		PublishedAt:        "2025-06-01T10:30:00Z",
		PublishedAtParsed:  ts("2025-06-01T10:30:00Z"),
		TitleLength:        len(title),
		EstimatedWordCount: 120,
	}
}

func fixedNow() time.Time {
	return time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
}

func TestValidateCleanSetScoresFull(t *testing.T) {
	t.Parallel()

	rows := domain.NewRowSet([]domain.Article{
		cleanArticle("https://example.com/1", "First headline about the economy"),
		cleanArticle("https://example.com/2", "Second headline about the economy"),
	})

	report := NewValidatorAt(rows, fixedNow).Validate()

	if report.TotalRecords != 2 {
		t.Fatalf("total records: %d", report.TotalRecords)
	}
	if report.QualityScore != 100 {
		t.Fatalf("expected score 100, got %v", report.QualityScore)
	}
	for col, stats := range report.NullRecords {
		if stats.NullCount != 0 {
			t.Fatalf("%s: unexpected nulls %d", col, stats.NullCount)
		}
	}
}

func TestDataTypesReportObservedKinds(t *testing.T) {
	t.Parallel()

	unparsed := cleanArticle("https://example.com/1", "A headline whose date never parsed")
	unparsed.PublishedAtParsed = nil
	negative := cleanArticle("https://example.com/2", "A headline with a broken word count")
	negative.EstimatedWordCount = -5

	report := NewValidatorAt(domain.NewRowSet([]domain.Article{unparsed, negative}), fixedNow).Validate()

	parsed := report.DataTypes["published_at_parsed"]
	if parsed.Valid || parsed.Actual != "null" {
		t.Fatalf("published_at_parsed: %+v", parsed)
	}
	words := report.DataTypes["estimated_word_count"]
	if words.Valid || words.Actual != "negative integer" {
		t.Fatalf("estimated_word_count: %+v", words)
	}

	titles := report.DataTypes["title_length"]
	if !titles.Valid || titles.Actual != "integer" {
		t.Fatalf("title_length should match its expected kind: %+v", titles)
	}

	clean := NewValidatorAt(domain.NewRowSet([]domain.Article{
		cleanArticle("https://example.com/3", "A headline in perfect shape"),
	}), fixedNow).Validate()
	if got := clean.DataTypes["published_at_parsed"]; !got.Valid || got.Actual != "timestamp" {
		t.Fatalf("clean published_at_parsed: %+v", got)
	}
}

func TestNullCheckReportsMissingTitle(t *testing.T) {
	t.Parallel()

	missing := cleanArticle("https://example.com/1", "")
	rows := domain.NewRowSet([]domain.Article{
		missing,
		cleanArticle("https://example.com/2", "Second headline about the economy"),
	})

	report := NewValidatorAt(rows, fixedNow).Validate()

	titleStats := report.NullRecords["title"]
	if titleStats.NullCount != 1 {
		t.Fatalf("title null count: %d", titleStats.NullCount)
	}
	if titleStats.NullPercentage != 50 {
		t.Fatalf("title null percentage: %v", titleStats.NullPercentage)
	}

	// 50% nulls fails one of six tests: 5/6 rounded to 2 decimals.
	if report.QualityScore != 83.33 {
		t.Fatalf("expected score 83.33, got %v", report.QualityScore)
	}
}

func TestDuplicateChecks(t *testing.T) {
	t.Parallel()

	a := cleanArticle("https://example.com/1", "Shared headline about nothing")
	b := cleanArticle("https://example.com/1", "Different headline same url...")
	c := cleanArticle("https://example.com/2", "Shared headline about nothing")

	report := NewValidatorAt(domain.NewRowSet([]domain.Article{a, b, c}), fixedNow).Validate()

	if report.DuplicateRecords.URLDuplicates != 1 {
		t.Fatalf("url duplicates: %d", report.DuplicateRecords.URLDuplicates)
	}
	if report.DuplicateRecords.ContentDuplicates != 1 {
		t.Fatalf("content duplicates: %d", report.DuplicateRecords.ContentDuplicates)
	}
	if report.QualityScore >= 100 {
		t.Fatalf("duplicates should fail tests, score %v", report.QualityScore)
	}
}

func TestDateIntegrity(t *testing.T) {
	t.Parallel()

	future := cleanArticle("https://example.com/1", "A headline from the near future")
	future.PublishedAtParsed = ts("2025-12-01T00:00:00Z")
	ancient := cleanArticle("https://example.com/2", "A headline from the distant past")
	ancient.PublishedAtParsed = ts("1999-03-15T00:00:00Z")
	normal := cleanArticle("https://example.com/3", "A headline firmly in the present")

	report := NewValidatorAt(domain.NewRowSet([]domain.Article{future, ancient, normal}), fixedNow).Validate()

	if report.DateIntegrity.FutureDates != 1 {
		t.Fatalf("future dates: %d", report.DateIntegrity.FutureDates)
	}
	if report.DateIntegrity.VeryOldDates != 1 {
		t.Fatalf("very old dates: %d", report.DateIntegrity.VeryOldDates)
	}
	if report.DateIntegrity.DateRange.Min == nil || report.DateIntegrity.DateRange.Min.Year() != 1999 {
		t.Fatalf("range min: %v", report.DateIntegrity.DateRange.Min)
	}
	if report.DateIntegrity.DateRange.Max == nil || report.DateIntegrity.DateRange.Max.Month() != time.December {
		t.Fatalf("range max: %v", report.DateIntegrity.DateRange.Max)
	}
}

func TestValueRanges(t *testing.T) {
	t.Parallel()

	small := cleanArticle("https://example.com/1", "Short headline for the range test")
	small.EstimatedWordCount = 100
	big := cleanArticle("https://example.com/2", "Another headline for the range test")
	big.EstimatedWordCount = 20000

	report := NewValidatorAt(domain.NewRowSet([]domain.Article{small, big}), fixedNow).Validate()

	wc := report.ValueRanges.WordCount
	if wc.Min != 100 || wc.Max != 20000 {
		t.Fatalf("word count range: %d..%d", wc.Min, wc.Max)
	}
	if wc.Mean != 10050 {
		t.Fatalf("word count mean: %v", wc.Mean)
	}
	if wc.Outliers != 1 {
		t.Fatalf("outliers: %d", wc.Outliers)
	}
}

func TestBusinessRules(t *testing.T) {
	t.Parallel()

	bare := cleanArticle("ftp://example.com/1", "")
	bare.Description = ""

	report := NewValidatorAt(domain.NewRowSet([]domain.Article{bare}), fixedNow).Validate()

	if report.BusinessRules.MissingBothTitleDescription != 1 {
		t.Fatalf("missing both: %d", report.BusinessRules.MissingBothTitleDescription)
	}
	if report.BusinessRules.InvalidURLs != 1 {
		t.Fatalf("invalid urls: %d", report.BusinessRules.InvalidURLs)
	}
}

func TestValidateEmptyRowSet(t *testing.T) {
	t.Parallel()

	report := NewValidatorAt(domain.NewRowSet(nil), fixedNow).Validate()

	if report.TotalRecords != 0 {
		t.Fatalf("total records: %d", report.TotalRecords)
	}
	if report.QualityScore < 0 || report.QualityScore > 100 {
		t.Fatalf("score out of bounds: %v", report.QualityScore)
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	t.Parallel()

	rows := domain.NewRowSet([]domain.Article{
		cleanArticle("https://example.com/1", "A headline that must not change"),
	})
	before := rows.Records[0]

	_ = NewValidatorAt(rows, fixedNow).Validate()
	_ = NewValidatorAt(rows, fixedNow).Validate()

	after := rows.Records[0]
	if before.Title != after.Title || before.URL != after.URL || before.EngagementScore != after.EngagementScore {
		t.Fatalf("validator mutated the row set")
	}
}

func TestScoreBounds(t *testing.T) {
	t.Parallel()

	worst := domain.Article{URL: "https://example.com/1"}
	rows := domain.NewRowSet([]domain.Article{worst, worst})

	report := NewValidatorAt(rows, fixedNow).Validate()
	if report.QualityScore < 0 || report.QualityScore > 100 {
		t.Fatalf("score out of bounds: %v", report.QualityScore)
	}
}
