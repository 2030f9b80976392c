package domain

import "time"

// DatabaseStats summarizes the persisted article store.
type DatabaseStats struct {
	TotalArticles  int
	UniqueSources  int
	MinPublishedAt *time.Time
	MaxPublishedAt *time.Time
	RecentArticles int
}
