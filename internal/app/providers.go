package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/alphavantage"
	"github.com/ternarybob/onetrade/internal/common"
	"github.com/ternarybob/onetrade/internal/eodhd"
	"github.com/ternarybob/onetrade/internal/finnhub"
	"github.com/ternarybob/onetrade/internal/interfaces"
	"github.com/ternarybob/onetrade/internal/polygon"
	"github.com/ternarybob/onetrade/internal/provider"
	"github.com/ternarybob/onetrade/internal/twelvedata"
)

// Providers holds one client per configured market-data provider, keyed by name.
type Providers struct {
	clients map[string]interface{}
}

// NewProviders constructs every market-data client from configuration.
// Clients are built even without a credential; calls then fail with a
// MissingCredential error.
func NewProviders(cfg *common.Config, logger arbor.ILogger) *Providers {
	p := &Providers{clients: make(map[string]interface{})}

	p.clients[common.ProviderPolygon] = polygon.NewClient(
		common.ResolveAPIKey(common.ProviderPolygon, cfg.Polygon.APIKey),
		clientOptions(cfg.Polygon, logger)...,
	)
	p.clients[common.ProviderTwelveData] = twelvedata.NewClient(
		common.ResolveAPIKey(common.ProviderTwelveData, cfg.TwelveData.APIKey),
		clientOptions(cfg.TwelveData, logger)...,
	)
	p.clients[common.ProviderAlphaVantage] = alphavantage.NewClient(
		common.ResolveAPIKey(common.ProviderAlphaVantage, cfg.AlphaVantage.APIKey),
		clientOptions(cfg.AlphaVantage, logger)...,
	)
	p.clients[common.ProviderEODHD] = eodhd.NewClient(
		common.ResolveAPIKey(common.ProviderEODHD, cfg.EODHD.APIKey),
		cfg.EODHD.Exchange,
		clientOptions(cfg.EODHD, logger)...,
	)
	p.clients[common.ProviderFinnhub] = finnhub.NewClient(
		common.ResolveAPIKey(common.ProviderFinnhub, cfg.Finnhub.APIKey),
		clientOptions(cfg.Finnhub, logger)...,
	)

	for name := range p.clients {
		pc, _ := cfg.ProviderConfig(name)
		logger.Debug().
			Str("provider", name).
			Bool("has_key", common.ResolveAPIKey(name, pc.APIKey) != "").
			Msg("Provider client configured")
	}

	return p
}

func clientOptions(pc common.ProviderConfig, logger arbor.ILogger) []provider.Option {
	return []provider.Option{
		provider.WithBaseURL(pc.BaseURL),
		provider.WithTimeout(pc.TimeoutDuration()),
		provider.WithRateLimit(pc.RateLimit),
		provider.WithLogger(logger),
	}
}

// CompanyInfoChain returns the company-info providers in chain order.
func (p *Providers) CompanyInfoChain(names []string) ([]interfaces.CompanyInfoProvider, error) {
	chain := make([]interfaces.CompanyInfoProvider, 0, len(names))
	for _, name := range names {
		c, ok := p.clients[name].(interfaces.CompanyInfoProvider)
		if !ok {
			return nil, fmt.Errorf("provider %q does not supply company info", name)
		}
		chain = append(chain, c)
	}
	return chain, nil
}

// TimeSeries returns the named daily-series provider.
func (p *Providers) TimeSeries(name string) (interfaces.TimeSeriesProvider, error) {
	c, ok := p.clients[name].(interfaces.TimeSeriesProvider)
	if !ok {
		return nil, fmt.Errorf("provider %q does not supply daily series", name)
	}
	return c, nil
}

// Price returns the named current-price provider.
func (p *Providers) Price(name string) (interfaces.PriceProvider, error) {
	c, ok := p.clients[name].(interfaces.PriceProvider)
	if !ok {
		return nil, fmt.Errorf("provider %q does not supply prices", name)
	}
	return c, nil
}

// News returns the named news provider.
func (p *Providers) News(name string) (interfaces.NewsProvider, error) {
	c, ok := p.clients[name].(interfaces.NewsProvider)
	if !ok {
		return nil, fmt.Errorf("provider %q does not supply news", name)
	}
	return c, nil
}
