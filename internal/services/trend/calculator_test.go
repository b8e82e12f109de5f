package trend

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/provider"
)

// seriesFromCloses builds a series whose first close is the latest day.
func seriesFromCloses(closes ...string) *models.PriceSeries {
	latest := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	s := &models.PriceSeries{Ticker: "TEST"}
	for i, c := range closes {
		d := latest.AddDate(0, 0, -i)
		s.Bars = append(s.Bars, models.PriceBar{
			Date:    d,
			DateStr: d.Format(models.DateLayout),
			Close:   c,
		})
	}
	return s
}

func trendFor(t *testing.T, set models.TrendSet, offset int) models.Trend {
	t.Helper()
	for _, tr := range set {
		if tr.Offset == offset {
			return tr
		}
	}
	t.Fatalf("no trend for offset %d", offset)
	return models.Trend{}
}

func TestCalculate_OneDayChange(t *testing.T) {
	set := Calculate(seriesFromCloses("10", "9", "8"))

	require.Len(t, set, len(Offsets))
	oneDay := trendFor(t, set, 1)
	require.NotNil(t, oneDay.Percent)
	assert.InDelta(t, 11.11, *oneDay.Percent, 0.01)
	assert.Equal(t, "1D", oneDay.Label)

	for _, offset := range []int{5, 21, 63} {
		assert.Nil(t, trendFor(t, set, offset).Percent, "offset %d needs more data", offset)
	}
}

func TestCalculate_UnsortedInput(t *testing.T) {
	s := seriesFromCloses("10", "9", "8")
	s.Bars[0], s.Bars[2] = s.Bars[2], s.Bars[0]
	original := append([]models.PriceBar(nil), s.Bars...)

	set := Calculate(s)

	require.NotNil(t, trendFor(t, set, 1).Percent)
	assert.InDelta(t, 11.11, *trendFor(t, set, 1).Percent, 0.01)
	assert.Equal(t, original, s.Bars, "input series must not be reordered")
}

func TestCalculate_AllOffsets(t *testing.T) {
	closes := make([]string, 64)
	for i := range closes {
		closes[i] = "100"
	}
	closes[0] = "110"
	closes[63] = "50"

	set := Calculate(seriesFromCloses(closes...))

	assert.InDelta(t, 10.0, *trendFor(t, set, 1).Percent, 1e-9)
	assert.InDelta(t, 10.0, *trendFor(t, set, 5).Percent, 1e-9)
	assert.InDelta(t, 10.0, *trendFor(t, set, 21).Percent, 1e-9)
	assert.InDelta(t, 120.0, *trendFor(t, set, 63).Percent, 1e-9)
}

func TestCalculate_NegativeChange(t *testing.T) {
	set := Calculate(seriesFromCloses("90", "100"))

	assert.InDelta(t, -10.0, *trendFor(t, set, 1).Percent, 1e-9)
}

func TestCalculate_AbsentTrends(t *testing.T) {
	tests := []struct {
		name   string
		series *models.PriceSeries
	}{
		{"nil series", nil},
		{"empty series", seriesFromCloses()},
		{"single point", seriesFromCloses("10")},
		{"zero base", seriesFromCloses("10", "0")},
		{"non-numeric base", seriesFromCloses("10", "None")},
		{"non-numeric latest", seriesFromCloses("n/a", "9")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Calculate(tt.series)
			require.Len(t, set, len(Offsets))
			for _, tr := range set {
				assert.Nil(t, tr.Percent, "offset %d", tr.Offset)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "1W", Label(5))
	assert.Equal(t, "1M", Label(21))
	assert.Equal(t, "3M", Label(63))
	assert.Equal(t, "10D", Label(10))
}

// mockSeriesProvider implements interfaces.TimeSeriesProvider for testing
type mockSeriesProvider struct {
	fetchFunc func(ctx context.Context, symbol string) (*models.PriceSeries, error)
	symbols   []string
}

func (m *mockSeriesProvider) Name() string {
	return "mockseries"
}

func (m *mockSeriesProvider) FetchDailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	m.symbols = append(m.symbols, symbol)
	return m.fetchFunc(ctx, symbol)
}

func TestServiceLoad(t *testing.T) {
	mock := &mockSeriesProvider{fetchFunc: func(ctx context.Context, symbol string) (*models.PriceSeries, error) {
		return seriesFromCloses("10", "9"), nil
	}}

	set, err := NewService(mock, arbor.NewLogger()).Load(context.Background(), " aapl ")

	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, mock.symbols)
	assert.InDelta(t, 11.11, *trendFor(t, set, 1).Percent, 0.01)
}

func TestServiceLoad_ProviderFailure(t *testing.T) {
	mock := &mockSeriesProvider{fetchFunc: func(ctx context.Context, symbol string) (*models.PriceSeries, error) {
		return nil, provider.StatusError("mockseries", 429, "slow down")
	}}

	set, err := NewService(mock, arbor.NewLogger()).Load(context.Background(), "AAPL")

	assert.Nil(t, set)
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrRateLimited))
	assert.Contains(t, err.Error(), "mockseries")
}

func TestServiceLoad_NilSeries(t *testing.T) {
	mock := &mockSeriesProvider{fetchFunc: func(ctx context.Context, symbol string) (*models.PriceSeries, error) {
		return nil, nil
	}}

	_, err := NewService(mock, arbor.NewLogger()).Load(context.Background(), "AAPL")

	assert.True(t, errors.Is(err, provider.ErrEmptyResult))
}

func TestServiceLoad_ShortSeriesIsNotAnError(t *testing.T) {
	mock := &mockSeriesProvider{fetchFunc: func(ctx context.Context, symbol string) (*models.PriceSeries, error) {
		return seriesFromCloses("10"), nil
	}}

	set, err := NewService(mock, arbor.NewLogger()).Load(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Len(t, set, len(Offsets))
	for _, tr := range set {
		assert.Nil(t, tr.Percent, fmt.Sprintf("offset %d", tr.Offset))
	}
}
