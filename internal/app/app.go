package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/common"
	"github.com/ternarybob/onetrade/internal/handlers"
	"github.com/ternarybob/onetrade/internal/interfaces"
	"github.com/ternarybob/onetrade/internal/services/catalog"
	"github.com/ternarybob/onetrade/internal/services/detail"
	"github.com/ternarybob/onetrade/internal/services/llm"
	"github.com/ternarybob/onetrade/internal/services/resolver"
	"github.com/ternarybob/onetrade/internal/services/sentiment"
	"github.com/ternarybob/onetrade/internal/services/trend"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	Providers     *Providers
	TextGenerator interfaces.TextGenerator

	// Domain services
	Resolver      *resolver.Service
	TrendService  *trend.Service
	Sentiment     *sentiment.Synthesizer
	DetailService *detail.Service
	Catalog       *catalog.Catalog

	// HTTP handlers
	APIHandler    *handlers.APIHandler
	StockHandler  *handlers.StockHandler
	StreamHandler *handlers.StreamHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Strs("company_info", cfg.Providers.CompanyInfo).
		Str("series", cfg.Providers.Series).
		Str("price", cfg.Providers.Price).
		Str("news", cfg.Providers.News).
		Str("textgen", cfg.Providers.TextGen).
		Int("stocks", app.Catalog.Len()).
		Msg("Application initialized")

	return app, nil
}

func (a *App) initServices() error {
	a.Providers = NewProviders(a.Config, a.Logger)

	factory := llm.NewProviderFactory(&a.Config.Gemini, &a.Config.Claude, a.Logger)
	generator, err := factory.TextGenerator(a.Config.Providers.TextGen)
	if err != nil {
		return err
	}
	a.TextGenerator = generator

	chain, err := a.Providers.CompanyInfoChain(a.Config.Providers.CompanyInfo)
	if err != nil {
		return err
	}
	a.Resolver = resolver.NewService(chain, generator, a.Logger)

	series, err := a.Providers.TimeSeries(a.Config.Providers.Series)
	if err != nil {
		return err
	}
	a.TrendService = trend.NewService(series, a.Logger)

	news, err := a.Providers.News(a.Config.Providers.News)
	if err != nil {
		return err
	}
	a.Sentiment = sentiment.NewSynthesizer(
		news,
		generator,
		a.Config.Sentiment.MaxArticles,
		a.Config.Sentiment.LookbackDays,
		a.Logger,
	)

	price, err := a.Providers.Price(a.Config.Providers.Price)
	if err != nil {
		return err
	}
	a.DetailService = detail.NewService(a.Resolver, a.TrendService, price, a.Sentiment, a.Logger)

	a.Catalog, err = catalog.Load(a.Logger, a.Config.Catalog.Files...)
	if err != nil {
		return fmt.Errorf("failed to load stock catalog: %w", err)
	}

	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Config.Providers, a.Logger)
	a.StockHandler = handlers.NewStockHandler(a.Catalog, a.DetailService, a.Logger)
	a.StreamHandler = handlers.NewStreamHandler(a.DetailService, a.Logger)
}

// Close closes all application resources
func (a *App) Close() error {
	if a.DetailService != nil {
		a.Logger.Info().Int("sessions", a.DetailService.ActiveSessions()).Msg("Closing detail sessions")
		a.DetailService.CloseAll()
	}

	a.Logger.Info().Msg("Application closed")
	return nil
}
