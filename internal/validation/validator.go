package validation

import (
	"math"
	"reflect"
	"strings"
	"time"

	"NewsAnalytics/internal/domain"
)

// epochFloor marks the oldest publication date considered plausible.
var epochFloor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// nullThresholdPercent is the pass mark for a null check: a column passes
// when fewer than this percentage of its values are null.
const nullThresholdPercent = 10.0

// wordCountOutlierLimit flags implausible articles; they are reported,
// never removed.
const wordCountOutlierLimit = 10000

// NullStats reports absent values for one column.
type NullStats struct {
	NullCount      int     `json:"null_count"`
	NullPercentage float64 `json:"null_percentage"`
}

// DuplicateStats reports records sharing identity keys.
type DuplicateStats struct {
	URLDuplicates     int `json:"url_duplicates"`
	ContentDuplicates int `json:"content_duplicates"`
}

// TypeCheck compares a column's representation against the expected kind.
type TypeCheck struct {
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Valid    bool   `json:"valid"`
}

// NumericStats carries min/max/mean for an integer column.
type NumericStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
}

// WordCountStats extends NumericStats with an implausibility counter.
type WordCountStats struct {
	NumericStats
	Outliers int `json:"outliers"`
}

// ValueRanges groups the range checks.
type ValueRanges struct {
	WordCount   WordCountStats `json:"word_count"`
	TitleLength NumericStats   `json:"title_length"`
}

// DateRange bounds the parsed publication instants present in the set.
type DateRange struct {
	Min *time.Time `json:"min"`
	Max *time.Time `json:"max"`
}

// DateIntegrity reports publication dates that fall outside plausible bounds.
type DateIntegrity struct {
	FutureDates  int       `json:"future_dates"`
	VeryOldDates int       `json:"very_old_dates"`
	DateRange    DateRange `json:"date_range"`
}

// BusinessRules reports violations of domain-specific rules.
type BusinessRules struct {
	MissingBothTitleDescription int `json:"missing_both_title_description"`
	InvalidURLs                 int `json:"invalid_urls"`
}

// Report is the immutable audit result for one row-set snapshot.
type Report struct {
	TotalRecords     int                  `json:"total_records"`
	TotalColumns     int                  `json:"total_columns"`
	NullRecords      map[string]NullStats `json:"null_records"`
	DuplicateRecords DuplicateStats       `json:"duplicate_records"`
	DataTypes        map[string]TypeCheck `json:"data_types"`
	ValueRanges      ValueRanges          `json:"value_ranges"`
	DateIntegrity    DateIntegrity        `json:"date_integrity"`
	BusinessRules    BusinessRules        `json:"business_rules"`
	QualityScore     float64              `json:"quality_score"`
}

// Validator audits a row set without mutating it. Safe to run repeatedly
// on the same or different snapshots.
type Validator struct {
	rows *domain.RowSet
	now  func() time.Time
}

// NewValidator wraps a row set for auditing against the wall clock.
func NewValidator(rows *domain.RowSet) *Validator {
	return &Validator{rows: rows, now: time.Now}
}

// NewValidatorAt pins the reference instant used by the date checks.
func NewValidatorAt(rows *domain.RowSet, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{rows: rows, now: now}
}

// Validate runs every check and computes the quality score.
func (v *Validator) Validate() Report {
	report := Report{
		TotalRecords:     v.rows.Len(),
		TotalColumns:     reflect.TypeOf(domain.Article{}).NumField(),
		NullRecords:      v.checkNulls(),
		DuplicateRecords: v.checkDuplicates(),
		DataTypes:        v.checkDataTypes(),
		ValueRanges:      v.checkValueRanges(),
		DateIntegrity:    v.checkDateIntegrity(),
		BusinessRules:    v.checkBusinessRules(),
	}
	report.QualityScore = qualityScore(report)
	return report
}

func (v *Validator) records() []domain.Article {
	if v.rows == nil {
		return nil
	}
	return v.rows.Records
}

func (v *Validator) checkNulls() map[string]NullStats {
	columns := []struct {
		name   string
		isNull func(domain.Article) bool
	}{
		{"title", func(r domain.Article) bool { return strings.TrimSpace(r.Title) == "" }},
		{"source_name", func(r domain.Article) bool { return strings.TrimSpace(r.SourceName) == "" }},
		{"published_at", func(r domain.Article) bool { return strings.TrimSpace(r.PublishedAt) == "" }},
		{"url", func(r domain.Article) bool { return strings.TrimSpace(r.URL) == "" }},
	}

	records := v.records()
	total := len(records)

	result := make(map[string]NullStats, len(columns))
	for _, col := range columns {
		count := 0
		for _, rec := range records {
			if col.isNull(rec) {
				count++
			}
		}
		pct := 0.0
		if total > 0 {
			pct = round2(float64(count) / float64(total) * 100)
		}
		result[col.name] = NullStats{NullCount: count, NullPercentage: pct}
	}
	return result
}

func (v *Validator) checkDuplicates() DuplicateStats {
	var stats DuplicateStats

	seenURL := map[string]struct{}{}
	type contentKey struct {
		title, source, published string
	}
	seenContent := map[contentKey]struct{}{}

	for _, rec := range v.records() {
		if _, ok := seenURL[rec.URL]; ok {
			stats.URLDuplicates++
		} else {
			seenURL[rec.URL] = struct{}{}
		}

		key := contentKey{rec.Title, rec.SourceName, rec.PublishedAt}
		if _, ok := seenContent[key]; ok {
			stats.ContentDuplicates++
		} else {
			seenContent[key] = struct{}{}
		}
	}

	return stats
}

func (v *Validator) checkDataTypes() map[string]TypeCheck {
	records := v.records()

	parsedOK := true
	nonNegativeWords := true
	nonNegativeTitles := true
	for _, rec := range records {
		if rec.PublishedAtParsed == nil {
			parsedOK = false
		}
		if rec.EstimatedWordCount < 0 {
			nonNegativeWords = false
		}
		if rec.TitleLength < 0 {
			nonNegativeTitles = false
		}
	}

	parsedActual := "timestamp"
	if !parsedOK {
		parsedActual = "null"
	}
	wordsActual := "integer"
	if !nonNegativeWords {
		wordsActual = "negative integer"
	}
	titlesActual := "integer"
	if !nonNegativeTitles {
		titlesActual = "negative integer"
	}

	return map[string]TypeCheck{
		"title":                {Expected: "string", Actual: "string", Valid: true},
		"source_name":          {Expected: "string", Actual: "string", Valid: true},
		"published_at_parsed":  {Expected: "timestamp", Actual: parsedActual, Valid: parsedOK},
		"estimated_word_count": {Expected: "integer", Actual: wordsActual, Valid: nonNegativeWords},
		"title_length":         {Expected: "integer", Actual: titlesActual, Valid: nonNegativeTitles},
	}
}

func (v *Validator) checkValueRanges() ValueRanges {
	records := v.records()

	var ranges ValueRanges
	ranges.WordCount.NumericStats = numericStats(records, func(r domain.Article) int { return r.EstimatedWordCount })
	ranges.TitleLength = numericStats(records, func(r domain.Article) int { return r.TitleLength })

	for _, rec := range records {
		if rec.EstimatedWordCount > wordCountOutlierLimit {
			ranges.WordCount.Outliers++
		}
	}

	return ranges
}

func numericStats(records []domain.Article, value func(domain.Article) int) NumericStats {
	if len(records) == 0 {
		return NumericStats{}
	}

	min, max, sum := value(records[0]), value(records[0]), 0
	for _, rec := range records {
		val := value(rec)
		if val < min {
			min = val
		}
		if val > max {
			max = val
		}
		sum += val
	}

	return NumericStats{
		Min:  min,
		Max:  max,
		Mean: round2(float64(sum) / float64(len(records))),
	}
}

func (v *Validator) checkDateIntegrity() DateIntegrity {
	now := v.now().UTC()

	var integrity DateIntegrity
	for _, rec := range v.records() {
		ts := rec.PublishedAtParsed
		if ts == nil {
			continue
		}
		if ts.After(now) {
			integrity.FutureDates++
		}
		if ts.Before(epochFloor) {
			integrity.VeryOldDates++
		}
		if integrity.DateRange.Min == nil || ts.Before(*integrity.DateRange.Min) {
			integrity.DateRange.Min = ts
		}
		if integrity.DateRange.Max == nil || ts.After(*integrity.DateRange.Max) {
			integrity.DateRange.Max = ts
		}
	}
	return integrity
}

func (v *Validator) checkBusinessRules() BusinessRules {
	var rules BusinessRules
	for _, rec := range v.records() {
		if strings.TrimSpace(rec.Title) == "" && strings.TrimSpace(rec.Description) == "" {
			rules.MissingBothTitleDescription++
		}
		if !strings.HasPrefix(rec.URL, "http") {
			rules.InvalidURLs++
		}
	}
	return rules
}

// qualityScore treats each null-check column and each duplicate-check
// category as one equally weighted pass/fail test. The weighting is
// deliberate, not tuned per column.
func qualityScore(report Report) float64 {
	total, passed := 0, 0

	for _, stats := range report.NullRecords {
		total++
		if stats.NullPercentage < nullThresholdPercent {
			passed++
		}
	}

	total++
	if report.DuplicateRecords.URLDuplicates == 0 {
		passed++
	}
	total++
	if report.DuplicateRecords.ContentDuplicates == 0 {
		passed++
	}

	if total == 0 {
		return 0
	}
	return round2(float64(passed) / float64(total) * 100)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
