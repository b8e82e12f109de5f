// Package sentiment turns recent news about a ticker into a Buy/Wait/Sell verdict.
package sentiment

import (
	"context"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/interfaces"
	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/provider"
)

const (
	// DefaultMaxArticles is the number of most recent articles summarized.
	DefaultMaxArticles = 30

	// DefaultLookbackDays is the news window length.
	DefaultLookbackDays = 90
)

// Synthesizer fetches a news window and asks a text generator for a verdict.
type Synthesizer struct {
	news         interfaces.NewsProvider
	generator    interfaces.TextGenerator
	logger       arbor.ILogger
	maxArticles  int
	lookbackDays int
	now          func() time.Time
}

// NewSynthesizer creates a synthesizer. Non-positive limits select the defaults.
func NewSynthesizer(news interfaces.NewsProvider, generator interfaces.TextGenerator, maxArticles, lookbackDays int, logger arbor.ILogger) *Synthesizer {
	if maxArticles <= 0 {
		maxArticles = DefaultMaxArticles
	}
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &Synthesizer{
		news:         news,
		generator:    generator,
		logger:       logger,
		maxArticles:  maxArticles,
		lookbackDays: lookbackDays,
		now:          time.Now,
	}
}

// WithClock sets the clock used for the news window.
func (s *Synthesizer) WithClock(now func() time.Time) *Synthesizer {
	s.now = now
	return s
}

// Window fetches and trims the news window ending today.
func (s *Synthesizer) Window(ctx context.Context, ticker string) (models.NewsWindow, error) {
	to := s.now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -s.lookbackDays)

	articles, err := s.news.FetchNews(ctx, ticker, from, to)
	if err != nil {
		return models.NewsWindow{}, &StageError{Stage: StageNews, Ticker: ticker, Err: err}
	}
	if len(articles) == 0 {
		return models.NewsWindow{}, &StageError{Stage: StageNews, Ticker: ticker, Err: provider.Empty(s.news.Name(), "no articles in window")}
	}
	return models.NewNewsWindow(ticker, from, to, articles, s.maxArticles), nil
}

// Synthesize builds the verdict for ticker. Failures are *StageError.
func (s *Synthesizer) Synthesize(ctx context.Context, ticker string) (*models.SentimentVerdict, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	start := time.Now()

	window, err := s.Window(ctx, ticker)
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Str("stage", string(StageNews)).Err(err).Msg("Sentiment synthesis failed")
		return nil, err
	}

	text, err := s.generator.GenerateText(ctx, BuildPrompt(window))
	if err == nil && strings.TrimSpace(text) == "" {
		err = provider.Empty(s.generator.Name(), "generated text is empty")
	}
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Str("stage", string(StageGeneration)).Err(err).Msg("Sentiment synthesis failed")
		return nil, &StageError{Stage: StageGeneration, Ticker: ticker, Err: err}
	}

	verdict := ParseVerdict(text)
	s.logger.Debug().
		Str("ticker", ticker).
		Int("articles", len(window.Articles)).
		Str("decision", string(verdict.Decision)).
		Dur("duration", time.Since(start)).
		Msg("Sentiment synthesized")
	return &verdict, nil
}
