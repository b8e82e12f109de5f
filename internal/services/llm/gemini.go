package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/common"
	"github.com/ternarybob/onetrade/internal/provider"
	"google.golang.org/genai"
)

// GeminiGenerator generates text with the Gemini API.
type GeminiGenerator struct {
	config *common.GeminiConfig
	logger arbor.ILogger

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiGenerator creates a generator; the SDK client is built on first use.
func NewGeminiGenerator(config *common.GeminiConfig, logger arbor.ILogger) *GeminiGenerator {
	return &GeminiGenerator{config: config, logger: logger}
}

// Name returns the provider name.
func (g *GeminiGenerator) Name() string {
	return string(ProviderGemini)
}

func (g *GeminiGenerator) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  g.config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.config.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(g.config.BaseURL, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, provider.NewError(g.Name(), provider.KindInvalidRequest, fmt.Errorf("failed to create Gemini client: %w", err))
	}
	g.client = client
	return client, nil
}

// GenerateText sends prompt as a single user turn and returns the first text
// part of the first candidate.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.config.APIKey == "" {
		return "", provider.MissingCredential(g.Name())
	}

	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{}
	if g.config.Temperature > 0 {
		config.Temperature = genai.Ptr(g.config.Temperature)
	}
	if g.config.MaxTokens > 0 {
		config.MaxOutputTokens = int32(g.config.MaxTokens)
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, g.config.Model, genai.Text(prompt), config)
	if err != nil {
		g.logger.Warn().Err(err).Str("model", g.config.Model).Dur("duration", time.Since(start)).Msg("Gemini request failed")
		return "", mapGeminiError(err)
	}

	g.logger.Debug().Str("model", g.config.Model).Dur("duration", time.Since(start)).Msg("Gemini response received")

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", provider.Empty(g.Name(), "no candidates in response")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			return part.Text, nil
		}
	}
	return "", provider.Empty(g.Name(), "no text in first candidate")
}

func mapGeminiError(err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}
	return statusToError(string(ProviderGemini), code, err)
}

// statusToError classifies an SDK failure by HTTP status. Code 0 means the
// request never produced a response.
func statusToError(name string, code int, err error) error {
	switch {
	case code == http.StatusTooManyRequests:
		return &provider.Error{Provider: name, Kind: provider.KindRateLimited, StatusCode: code, Err: err}
	case code != 0:
		return &provider.Error{Provider: name, Kind: provider.KindTransportFailure, StatusCode: code, Err: err}
	default:
		return provider.NewError(name, provider.KindTransportFailure, err)
	}
}
