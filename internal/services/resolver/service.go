// Package resolver resolves company information through an ordered chain of
// providers, falling back to generated text when no provider has a description.
package resolver

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/interfaces"
	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/provider"
)

// Service runs the company-info fallback chain.
type Service struct {
	chain     []interfaces.CompanyInfoProvider
	generator interfaces.TextGenerator
	logger    arbor.ILogger
}

// NewService creates a resolver over chain, tried in order, with generator as
// the last resort.
func NewService(chain []interfaces.CompanyInfoProvider, generator interfaces.TextGenerator, logger arbor.ILogger) *Service {
	return &Service{
		chain:     chain,
		generator: generator,
		logger:    logger,
	}
}

// Chain returns the provider names in resolution order.
func (s *Service) Chain() []string {
	names := make([]string, 0, len(s.chain))
	for _, p := range s.chain {
		names = append(names, p.Name())
	}
	return names
}

// Resolve returns the first usable provider profile. When none is usable, the
// outcome of the last provider decides the fallback: a profile that was
// returned without a description gets a generated description, and a failed
// fetch is replaced by generated text alone. Unusable profiles from earlier
// providers are discarded.
func (s *Service) Resolve(ctx context.Context, ticker string) (*models.Resolution, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, provider.NewError("resolver", provider.KindInvalidRequest, errors.New("ticker is required"))
	}

	var (
		lastProfile  *models.CompanyProfile
		lastErr      error
		lastProvider string
	)

	for _, p := range s.chain {
		start := time.Now()
		profile, err := p.FetchCompanyProfile(ctx, ticker)
		elapsed := time.Since(start)

		lastProvider = p.Name()
		lastProfile, lastErr = profile, err

		switch {
		case err != nil:
			s.logger.Warn().
				Str("ticker", ticker).
				Str("provider", p.Name()).
				Str("outcome", "failed").
				Str("kind", provider.KindOf(err).String()).
				Dur("duration", elapsed).
				Err(err).
				Msg("Company info attempt")
		case profile.Usable():
			s.logger.Info().
				Str("ticker", ticker).
				Str("provider", p.Name()).
				Str("outcome", "usable").
				Dur("duration", elapsed).
				Msg("Company info attempt")
			return &models.Resolution{
				Profile:  profile,
				Origin:   models.OriginLive,
				Provider: p.Name(),
			}, nil
		default:
			s.logger.Info().
				Str("ticker", ticker).
				Str("provider", p.Name()).
				Str("outcome", "unusable").
				Dur("duration", elapsed).
				Msg("Company info attempt")
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &ExhaustedError{Ticker: ticker, Last: ctxErr}
		}
	}

	if s.generator == nil {
		if lastErr == nil {
			lastErr = provider.Empty("resolver", "no text generator configured")
		}
		return nil, &ExhaustedError{Ticker: ticker, Last: lastErr}
	}

	start := time.Now()
	text, genErr := s.generator.GenerateText(ctx, BuildStockInfoPrompt(ticker))
	if genErr == nil && strings.TrimSpace(text) == "" {
		genErr = provider.Empty(s.generator.Name(), "generated text is empty")
	}
	if genErr != nil {
		s.logger.Warn().
			Str("ticker", ticker).
			Str("provider", s.generator.Name()).
			Str("outcome", "failed").
			Dur("duration", time.Since(start)).
			Err(genErr).
			Msg("Company info synthesis")
		return nil, &ExhaustedError{Ticker: ticker, Last: genErr}
	}
	text = strings.TrimSpace(text)

	s.logger.Info().
		Str("ticker", ticker).
		Str("provider", s.generator.Name()).
		Str("outcome", "synthesized").
		Bool("merged", lastErr == nil && lastProfile != nil).
		Dur("duration", time.Since(start)).
		Msg("Company info synthesis")

	if lastErr == nil && lastProfile != nil {
		merged := lastProfile.WithDescription(text)
		return &models.Resolution{
			Profile:  &merged,
			Origin:   models.OriginSynthesizedDescription,
			Provider: lastProvider,
		}, nil
	}

	return &models.Resolution{
		Text:     text,
		Origin:   models.OriginSynthesizedText,
		Provider: s.generator.Name(),
	}, nil
}
