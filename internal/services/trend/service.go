// Package trend computes percentage price changes over fixed look-back offsets.
package trend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/interfaces"
	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/provider"
)

// Service loads a daily series and calculates its trends.
type Service struct {
	series interfaces.TimeSeriesProvider
	logger arbor.ILogger
}

// NewService creates a trend service backed by a time series provider.
func NewService(series interfaces.TimeSeriesProvider, logger arbor.ILogger) *Service {
	return &Service{series: series, logger: logger}
}

// Load fetches the daily series for ticker and calculates trends. A fetch
// failure is returned as is; an insufficient series is not an error.
func (s *Service) Load(ctx context.Context, ticker string) (models.TrendSet, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	start := time.Now()
	series, err := s.series.FetchDailySeries(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily series from %s: %w", s.series.Name(), err)
	}
	if series == nil {
		return nil, provider.Empty(s.series.Name(), "no daily series returned")
	}

	set := Calculate(series)
	s.logger.Debug().
		Str("ticker", ticker).
		Str("provider", s.series.Name()).
		Int("bars", series.Len()).
		Dur("duration", time.Since(start)).
		Msg("Trends calculated")
	return set, nil
}
