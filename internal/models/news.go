package models

import (
	"sort"
	"time"
)

// NewsArticle is a single news item for a ticker. Summary is empty when the
// provider did not supply one.
type NewsArticle struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary,omitempty"`
	Datetime int64  `json:"datetime"` // unix seconds
	URL      string `json:"url,omitempty"`
	Source   string `json:"source,omitempty"`
}

// Time returns the publication time.
func (a NewsArticle) Time() time.Time {
	return time.Unix(a.Datetime, 0).UTC()
}

// NewsWindow is the most recent articles for a ticker within a look-back range,
// newest first.
type NewsWindow struct {
	Ticker   string        `json:"ticker"`
	From     time.Time     `json:"from"`
	To       time.Time     `json:"to"`
	Articles []NewsArticle `json:"articles"`
}

// NewNewsWindow sorts articles by timestamp descending and keeps at most limit.
// A non-positive limit keeps everything.
func NewNewsWindow(ticker string, from, to time.Time, articles []NewsArticle, limit int) NewsWindow {
	sorted := make([]NewsArticle, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Datetime > sorted[j].Datetime
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return NewsWindow{
		Ticker:   ticker,
		From:     from,
		To:       to,
		Articles: sorted,
	}
}
