package models

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PriceBar is one trading day of OHLCV data. Values keep the provider's numeric
// text so unparseable data can be detected where it is used.
type PriceBar struct {
	Date    time.Time `json:"-"`
	DateStr string    `json:"date"`
	Open    string    `json:"open"`
	High    string    `json:"high"`
	Low     string    `json:"low"`
	Close   string    `json:"close"`
	Volume  string    `json:"volume"`
}

// CloseValue parses the close price.
func (b PriceBar) CloseValue() (decimal.Decimal, bool) {
	return ParseNumber(b.Close)
}

// PriceSeries is the daily history of a single ticker.
type PriceSeries struct {
	Ticker string     `json:"ticker"`
	Bars   []PriceBar `json:"bars"`
	Source string     `json:"source,omitempty"`
}

// SortDescending orders bars latest first. Bars with unparseable dates fall back
// to comparing the raw date strings.
func (s *PriceSeries) SortDescending() {
	sort.SliceStable(s.Bars, func(i, j int) bool {
		a, b := s.Bars[i], s.Bars[j]
		if !a.Date.IsZero() && !b.Date.IsZero() {
			return a.Date.After(b.Date)
		}
		return a.DateStr > b.DateStr
	})
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int {
	return len(s.Bars)
}

// Date layouts used by the providers.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ParseBarDate parses a provider date or date-time string. The zero time is
// returned when neither layout matches.
func ParseBarDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateTimeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t
	}
	return time.Time{}
}

// ParseNumber parses provider numeric text. Empty strings and placeholders such
// as "None" or "-" are reported as not numeric.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "null", "n/a", "-":
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseOptionalFloat returns a pointer to the parsed value, or nil.
func ParseOptionalFloat(s string) *float64 {
	d, ok := ParseNumber(s)
	if !ok {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}

// ParseOptionalInt returns a pointer to the parsed integer value, or nil.
func ParseOptionalInt(s string) *int64 {
	d, ok := ParseNumber(s)
	if !ok {
		return nil
	}
	v := d.IntPart()
	return &v
}

// Trend is the percentage change over one look-back offset. Percent is nil
// when it could not be computed.
type Trend struct {
	Offset  int      `json:"offset"`
	Label   string   `json:"label"`
	Percent *float64 `json:"percent"`
}

// TrendSet holds one Trend per look-back offset, in offset order.
type TrendSet []Trend

// Percent returns the percentage for offset, if present.
func (ts TrendSet) Percent(offset int) (float64, bool) {
	for _, t := range ts {
		if t.Offset == offset && t.Percent != nil {
			return *t.Percent, true
		}
	}
	return 0, false
}
