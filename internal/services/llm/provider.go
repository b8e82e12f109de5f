package llm

import (
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/common"
	"github.com/ternarybob/onetrade/internal/interfaces"
)

// ProviderType represents the text-generation provider type
type ProviderType string

const (
	// ProviderGemini uses Google Gemini API
	ProviderGemini ProviderType = "gemini"
	// ProviderClaude uses Anthropic Claude API
	ProviderClaude ProviderType = "claude"
)

// ParseProviderType maps a configured provider name to a ProviderType.
// "anthropic" and "google" are accepted as aliases.
func ParseProviderType(name string) (ProviderType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gemini", "google":
		return ProviderGemini, nil
	case "claude", "anthropic":
		return ProviderClaude, nil
	default:
		return "", fmt.Errorf("unknown text generation provider %q", name)
	}
}

// ProviderFactory creates text generators from configuration
type ProviderFactory struct {
	geminiConfig *common.GeminiConfig
	claudeConfig *common.ClaudeConfig
	logger       arbor.ILogger
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(geminiConfig *common.GeminiConfig, claudeConfig *common.ClaudeConfig, logger arbor.ILogger) *ProviderFactory {
	return &ProviderFactory{
		geminiConfig: geminiConfig,
		claudeConfig: claudeConfig,
		logger:       logger,
	}
}

// TextGenerator returns the generator for the named provider. The API key is
// resolved here; an empty key yields a generator that reports MissingCredential
// on every call rather than failing construction.
func (f *ProviderFactory) TextGenerator(name string) (interfaces.TextGenerator, error) {
	kind, err := ParseProviderType(name)
	if err != nil {
		return nil, err
	}

	switch kind {
	case ProviderClaude:
		cfg := *f.claudeConfig
		cfg.APIKey = common.ResolveAPIKey(string(ProviderClaude), cfg.APIKey)
		f.logger.Debug().Str("provider", string(kind)).Str("model", cfg.Model).Bool("has_key", cfg.APIKey != "").Msg("Text generator configured")
		return NewClaudeGenerator(&cfg, f.logger), nil
	default:
		cfg := *f.geminiConfig
		cfg.APIKey = common.ResolveAPIKey(string(ProviderGemini), cfg.APIKey)
		f.logger.Debug().Str("provider", string(kind)).Str("model", cfg.Model).Bool("has_key", cfg.APIKey != "").Msg("Text generator configured")
		return NewGeminiGenerator(&cfg, f.logger), nil
	}
}
