package analysis

import (
	"math"
	"sort"
	"time"

	"NewsAnalytics/internal/domain"
)

// Results is the typed, JSON-serializable output of one analysis pass.
type Results struct {
	BasicStats BasicStats      `json:"basic_stats"`
	Temporal   TemporalStats   `json:"temporal_analysis"`
	Sources    SourceStats     `json:"source_analysis"`
	Content    ContentStats    `json:"content_analysis"`
	Engagement EngagementStats `json:"engagement_analysis"`
}

// BasicStats is the statistical overview of the set.
type BasicStats struct {
	TotalArticles        int        `json:"total_articles"`
	UniqueSources        int        `json:"unique_sources"`
	DateRangeStart       *time.Time `json:"date_range_start"`
	DateRangeEnd         *time.Time `json:"date_range_end"`
	DateSpanDays         int        `json:"date_span_days"`
	AvgTitleLength       float64    `json:"avg_title_length"`
	AvgDescriptionLength float64    `json:"avg_description_length"`
	AvgWordCount         float64    `json:"avg_word_count"`
	ArticlesWithImages   int        `json:"articles_with_images"`
	ArticlesWithAuthors  int        `json:"articles_with_authors"`
}

// TemporalStats describes publication patterns over time.
type TemporalStats struct {
	AvgPerDay          float64        `json:"avg_per_day"`
	MostActiveDate     string         `json:"most_active_date"`
	LeastActiveDate    string         `json:"least_active_date"`
	PeakHour           int            `json:"peak_hour"`
	QuietHour          int            `json:"quiet_hour"`
	HourlyDistribution map[int]int    `json:"hourly_distribution"`
	DayOfWeek          map[string]int `json:"day_of_week_distribution"`
	MostActiveWeekday  string         `json:"most_active_weekday"`
}

// SourceCount pairs a source with its article volume.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// SourceStats ranks sources and profiles their output.
type SourceStats struct {
	TotalSources         int           `json:"total_sources"`
	TopByVolume          []SourceCount `json:"top_by_volume"`
	AvgArticlesPerSource float64       `json:"avg_articles_per_source"`
}

// ContentStats profiles the cleaned content columns.
type ContentStats struct {
	CategoryDistribution map[string]int `json:"category_distribution"`
	AvgTitleWordCount    float64        `json:"avg_title_word_count"`
	AvgDescriptionWords  float64        `json:"avg_description_word_count"`
}

// EngagementStats summarizes the synthetic engagement column.
type EngagementStats struct {
	Avg              float64 `json:"avg"`
	Max              int     `json:"max"`
	Min              int     `json:"min"`
	TopCategory      string  `json:"top_category"`
	TopCategoryScore float64 `json:"top_category_score"`
}

// Analyzer computes read-only descriptive aggregates over a cleaned row set.
type Analyzer struct {
	rows *domain.RowSet
}

// NewAnalyzer wraps a row set for analysis.
func NewAnalyzer(rows *domain.RowSet) *Analyzer {
	return &Analyzer{rows: rows}
}

// Analyze runs every aggregate. An empty row set produces zeroed results.
func (a *Analyzer) Analyze() Results {
	return Results{
		BasicStats: a.basicStats(),
		Temporal:   a.temporal(),
		Sources:    a.sources(),
		Content:    a.content(),
		Engagement: a.engagement(),
	}
}

func (a *Analyzer) records() []domain.Article {
	if a.rows == nil {
		return nil
	}
	return a.rows.Records
}

func (a *Analyzer) basicStats() BasicStats {
	records := a.records()

	stats := BasicStats{
		TotalArticles: len(records),
		UniqueSources: a.rows.UniqueSources(),
	}
	if len(records) == 0 {
		return stats
	}

	var titleSum, descSum, wordSum int
	for _, rec := range records {
		titleSum += rec.TitleLength
		descSum += rec.DescriptionLength
		wordSum += rec.EstimatedWordCount
		if rec.HasImage {
			stats.ArticlesWithImages++
		}
		if rec.HasAuthor {
			stats.ArticlesWithAuthors++
		}

		ts := rec.PublishedAtParsed
		if ts == nil {
			continue
		}
		if stats.DateRangeStart == nil || ts.Before(*stats.DateRangeStart) {
			stats.DateRangeStart = ts
		}
		if stats.DateRangeEnd == nil || ts.After(*stats.DateRangeEnd) {
			stats.DateRangeEnd = ts
		}
	}

	n := float64(len(records))
	stats.AvgTitleLength = round2(float64(titleSum) / n)
	stats.AvgDescriptionLength = round2(float64(descSum) / n)
	stats.AvgWordCount = round2(float64(wordSum) / n)

	if stats.DateRangeStart != nil && stats.DateRangeEnd != nil {
		stats.DateSpanDays = int(stats.DateRangeEnd.Sub(*stats.DateRangeStart).Hours() / 24)
	}

	return stats
}

func (a *Analyzer) temporal() TemporalStats {
	records := a.records()

	stats := TemporalStats{
		HourlyDistribution: map[int]int{},
		DayOfWeek:          map[string]int{},
	}
	if len(records) == 0 {
		return stats
	}

	daily := map[string]int{}
	for _, rec := range records {
		daily[rec.PublishedDate]++
		stats.HourlyDistribution[rec.PublishedHour]++
		stats.DayOfWeek[rec.PublishedDayOfWeek]++
	}

	stats.AvgPerDay = round2(float64(len(records)) / float64(len(daily)))
	stats.MostActiveDate, _ = maxStringKey(daily)
	stats.LeastActiveDate, _ = minStringKey(daily)
	stats.PeakHour = maxIntKey(stats.HourlyDistribution)
	stats.QuietHour = minIntKey(stats.HourlyDistribution)
	stats.MostActiveWeekday, _ = maxStringKey(stats.DayOfWeek)

	return stats
}

func (a *Analyzer) sources() SourceStats {
	records := a.records()

	counts := map[string]int{}
	for _, rec := range records {
		counts[rec.SourceName]++
	}

	stats := SourceStats{TotalSources: len(counts)}
	if len(counts) == 0 {
		return stats
	}

	ranked := make([]SourceCount, 0, len(counts))
	for source, count := range counts {
		ranked = append(ranked, SourceCount{Source: source, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Source < ranked[j].Source
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	stats.TopByVolume = ranked
	stats.AvgArticlesPerSource = round2(float64(len(records)) / float64(len(counts)))

	return stats
}

func (a *Analyzer) content() ContentStats {
	records := a.records()

	stats := ContentStats{CategoryDistribution: map[string]int{}}
	if len(records) == 0 {
		return stats
	}

	var titleWords, descWords int
	for _, rec := range records {
		stats.CategoryDistribution[rec.ContentCategory]++
		titleWords += rec.TitleWordCount
		descWords += rec.DescriptionWordCount
	}

	n := float64(len(records))
	stats.AvgTitleWordCount = round2(float64(titleWords) / n)
	stats.AvgDescriptionWords = round2(float64(descWords) / n)

	return stats
}

func (a *Analyzer) engagement() EngagementStats {
	records := a.records()
	if len(records) == 0 {
		return EngagementStats{}
	}

	stats := EngagementStats{
		Max: records[0].EngagementScore,
		Min: records[0].EngagementScore,
	}

	sum := 0
	categorySums := map[string]int{}
	categoryCounts := map[string]int{}
	for _, rec := range records {
		score := rec.EngagementScore
		sum += score
		if score > stats.Max {
			stats.Max = score
		}
		if score < stats.Min {
			stats.Min = score
		}
		categorySums[rec.ContentCategory] += score
		categoryCounts[rec.ContentCategory]++
	}
	stats.Avg = round2(float64(sum) / float64(len(records)))

	best := ""
	bestAvg := -1.0
	categories := make([]string, 0, len(categorySums))
	for cat := range categorySums {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		avg := float64(categorySums[cat]) / float64(categoryCounts[cat])
		if avg > bestAvg {
			best, bestAvg = cat, avg
		}
	}
	stats.TopCategory = best
	stats.TopCategoryScore = round2(bestAvg)

	return stats
}

// maxStringKey returns the key with the highest count; ties break on the
// lexicographically smaller key so results are stable.
func maxStringKey(counts map[string]int) (string, int) {
	best, bestCount := "", -1
	for key, count := range counts {
		if count > bestCount || (count == bestCount && key < best) {
			best, bestCount = key, count
		}
	}
	return best, bestCount
}

func minStringKey(counts map[string]int) (string, int) {
	best, bestCount := "", math.MaxInt
	for key, count := range counts {
		if count < bestCount || (count == bestCount && key < best) {
			best, bestCount = key, count
		}
	}
	return best, bestCount
}

func maxIntKey(counts map[int]int) int {
	best, bestCount := 0, -1
	for key, count := range counts {
		if count > bestCount || (count == bestCount && key < best) {
			best, bestCount = key, count
		}
	}
	return best
}

func minIntKey(counts map[int]int) int {
	best, bestCount := 0, math.MaxInt
	for key, count := range counts {
		if count < bestCount || (count == bestCount && key < best) {
			best, bestCount = key, count
		}
	}
	return best
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
