package models

// Panel identifies one independently loaded slice of the detail view.
type Panel string

const (
	PanelInfo      Panel = "info"
	PanelTrend     Panel = "trend"
	PanelPrice     Panel = "price"
	PanelSentiment Panel = "sentiment"
)

// AllPanels lists the panels of a detail view in display order.
var AllPanels = []Panel{PanelInfo, PanelTrend, PanelPrice, PanelSentiment}

// PanelError is the labeled message shown in place of a failed panel.
type PanelError struct {
	Panel   Panel  `json:"panel"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

func (e *PanelError) Error() string {
	return e.Label + ": " + e.Message
}

// StockDetail is the assembled detail view for one ticker. Each panel is
// written by exactly one task.
type StockDetail struct {
	Ticker string `json:"ticker"`

	Info      *Resolution `json:"info,omitempty"`
	InfoError *PanelError `json:"info_error,omitempty"`

	Trends     TrendSet    `json:"trends,omitempty"`
	TrendError *PanelError `json:"trend_error,omitempty"`

	Price      *float64    `json:"price,omitempty"`
	PriceError *PanelError `json:"price_error,omitempty"`

	Sentiment      *SentimentVerdict `json:"sentiment,omitempty"`
	SentimentError *PanelError       `json:"sentiment_error,omitempty"`
}

// DisplayName returns the resolved company name, or fallback when no structural
// profile is available.
func (d *StockDetail) DisplayName(fallback string) string {
	if d.Info != nil && d.Info.Profile != nil && d.Info.Profile.Name != "" {
		return d.Info.Profile.Name
	}
	return fallback
}
