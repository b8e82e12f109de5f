package trend

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ternarybob/onetrade/internal/models"
)

// Offsets are the look-back distances in data points: 1 day, 1 week, 1 month
// and 1 quarter of trading days.
var Offsets = []int{1, 5, 21, 63}

var labels = map[int]string{
	1:  "1D",
	5:  "1W",
	21: "1M",
	63: "3M",
}

var hundred = decimal.NewFromInt(100)

// Label returns the display label for an offset.
func Label(offset int) string {
	if l, ok := labels[offset]; ok {
		return l
	}
	return fmt.Sprintf("%dD", offset)
}

// Calculate returns one Trend per offset. The series is not modified. A trend
// is absent when the series is too short, either close is not numeric, or the
// base close is zero.
func Calculate(series *models.PriceSeries) models.TrendSet {
	set := make(models.TrendSet, 0, len(Offsets))
	for _, offset := range Offsets {
		set = append(set, models.Trend{Offset: offset, Label: Label(offset)})
	}
	if series == nil || len(series.Bars) <= 1 {
		return set
	}

	sorted := models.PriceSeries{Ticker: series.Ticker, Bars: make([]models.PriceBar, len(series.Bars))}
	copy(sorted.Bars, series.Bars)
	sorted.SortDescending()

	latest, ok := sorted.Bars[0].CloseValue()
	if !ok {
		return set
	}

	for i := range set {
		offset := set[i].Offset
		if len(sorted.Bars) <= offset {
			continue
		}
		base, ok := sorted.Bars[offset].CloseValue()
		if !ok || base.IsZero() {
			continue
		}
		pct, _ := latest.Sub(base).Div(base).Mul(hundred).Float64()
		set[i].Percent = &pct
	}
	return set
}
