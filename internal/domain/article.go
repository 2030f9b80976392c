package domain

import "time"

// Article is one flattened news record flowing through the pipeline.
// Raw fields arrive from the extraction client; parse products and derived
// features are filled in by the cleaning pipeline.
type Article struct {
	SourceID    string
	SourceName  string
	Author      string
	Title       string
	Description string
	URL         string
	URLToImage  string
	PublishedAt string
	Content     string
	ArticleType string
	Category    string

	// Parse product of PublishedAt; nil until the date step runs or when
	// the raw value could not be parsed.
	PublishedAtParsed *time.Time

	PublishedDate      string
	PublishedYear      int
	PublishedMonth     int
	PublishedDay       int
	PublishedHour      int
	PublishedDayOfWeek string
	PublishedWeek      int

	TitleLength          int
	TitleWordCount       int
	DescriptionLength    int
	DescriptionWordCount int
	ContentLength        int
	EstimatedWordCount   int
	HasImage             bool
	HasAuthor            bool
	ContentCategory      string
	EngagementScore      int
}

// RowSet is the ordered in-memory table of articles passed between stages.
// Ownership transfers stage to stage; stages never mutate it concurrently.
type RowSet struct {
	Records []Article
}

// NewRowSet wraps a slice of records preserving their order.
func NewRowSet(records []Article) *RowSet {
	return &RowSet{Records: records}
}

// Len reports the number of records currently in the set.
func (rs *RowSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Records)
}

// Clone returns a copy safe for read-only consumers that must not observe
// later mutations. Parsed timestamps are copied by value.
func (rs *RowSet) Clone() *RowSet {
	if rs == nil {
		return nil
	}
	records := make([]Article, len(rs.Records))
	copy(records, rs.Records)
	for i := range records {
		if records[i].PublishedAtParsed != nil {
			ts := *records[i].PublishedAtParsed
			records[i].PublishedAtParsed = &ts
		}
	}
	return &RowSet{Records: records}
}

// UniqueSources counts distinct source names in the set.
func (rs *RowSet) UniqueSources() int {
	if rs == nil {
		return 0
	}
	seen := map[string]struct{}{}
	for _, rec := range rs.Records {
		seen[rec.SourceName] = struct{}{}
	}
	return len(seen)
}
