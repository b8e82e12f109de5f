package llm

import (
	"context"
	"errors"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/common"
	"github.com/ternarybob/onetrade/internal/provider"
)

// ClaudeGenerator generates text with the Anthropic Messages API.
type ClaudeGenerator struct {
	config *common.ClaudeConfig
	logger arbor.ILogger
	client anthropic.Client
}

// NewClaudeGenerator creates a generator. SDK retries are disabled.
func NewClaudeGenerator(config *common.ClaudeConfig, logger arbor.ILogger) *ClaudeGenerator {
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &ClaudeGenerator{
		config: config,
		logger: logger,
		client: anthropic.NewClient(opts...),
	}
}

// Name returns the provider name.
func (c *ClaudeGenerator) Name() string {
	return string(ProviderClaude)
}

// GenerateText sends prompt as a single user message and returns the first text block.
func (c *ClaudeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.config.APIKey == "" {
		return "", provider.MissingCredential(c.Name())
	}

	maxTokens := c.config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = common.DefaultClaudeMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if c.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(c.config.Temperature))
	}

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		c.logger.Warn().Err(err).Str("model", c.config.Model).Dur("duration", time.Since(start)).Msg("Claude request failed")
		code := 0
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			code = apiErr.StatusCode
		}
		return "", statusToError(c.Name(), code, err)
	}

	c.logger.Debug().Str("model", c.config.Model).Dur("duration", time.Since(start)).Msg("Claude response received")

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", provider.Empty(c.Name(), "no text block in response")
}
