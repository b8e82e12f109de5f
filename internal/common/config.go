package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Provider names accepted in the [providers] section.
const (
	ProviderPolygon      = "polygon"
	ProviderTwelveData   = "twelvedata"
	ProviderAlphaVantage = "alphavantage"
	ProviderEODHD        = "eodhd"
	ProviderFinnhub      = "finnhub"
	ProviderGemini       = "gemini"
	ProviderClaude       = "claude"
)

// DefaultClaudeMaxTokens is used when claude.max_tokens is unset.
const DefaultClaudeMaxTokens = 1024

// Config represents the application configuration
type Config struct {
	Server       ServerConfig    `toml:"server"`
	Logging      LoggingConfig   `toml:"logging"`
	Providers    ProvidersConfig `toml:"providers"`
	Polygon      ProviderConfig  `toml:"polygon"`
	TwelveData   ProviderConfig  `toml:"twelvedata"`
	AlphaVantage ProviderConfig  `toml:"alphavantage"`
	EODHD        ProviderConfig  `toml:"eodhd"`
	Finnhub      ProviderConfig  `toml:"finnhub"`
	Gemini       GeminiConfig    `toml:"gemini"`
	Claude       ClaudeConfig    `toml:"claude"`
	Sentiment    SentimentConfig `toml:"sentiment"`
	Catalog      CatalogConfig   `toml:"catalog"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"omitempty,oneof=trace debug info warn error"` // "debug", "info", "warn", "error"
	Output     []string `toml:"output" validate:"dive,oneof=stdout console file"`             // "stdout", "file"
	TimeFormat string   `toml:"time_format"`                                                  // Time format for logs (default: "15:04:05")
}

// ProvidersConfig selects which provider serves each data concern.
type ProvidersConfig struct {
	CompanyInfo []string `toml:"company_info" validate:"min=2,dive,oneof=polygon twelvedata alphavantage eodhd"`
	Series      string   `toml:"series" validate:"oneof=twelvedata alphavantage eodhd"`
	Price       string   `toml:"price" validate:"oneof=polygon twelvedata alphavantage eodhd finnhub"`
	News        string   `toml:"news" validate:"oneof=finnhub eodhd"`
	TextGen     string   `toml:"textgen" validate:"oneof=gemini claude"`
}

// ProviderConfig holds the endpoint and credential of one market-data provider.
type ProviderConfig struct {
	BaseURL   string  `toml:"base_url" validate:"omitempty,url"`
	APIKey    string  `toml:"api_key"`
	RateLimit float64 `toml:"rate_limit" validate:"gte=0"` // requests per second, 0 disables
	Timeout   string  `toml:"timeout"`                     // duration string (default: "30s")
	Exchange  string  `toml:"exchange"`                    // eodhd only: suffix for bare tickers
}

// TimeoutDuration parses Timeout, returning 0 when unset or invalid.
func (p ProviderConfig) TimeoutDuration() time.Duration {
	if p.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model" validate:"required"`
	Temperature float32 `toml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `toml:"max_tokens" validate:"gte=0"`
	BaseURL     string  `toml:"base_url" validate:"omitempty,url"`
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model" validate:"required"`
	Temperature float32 `toml:"temperature" validate:"gte=0,lte=1"`
	MaxTokens   int     `toml:"max_tokens" validate:"gte=0"`
	BaseURL     string  `toml:"base_url" validate:"omitempty,url"`
}

type SentimentConfig struct {
	MaxArticles  int `toml:"max_articles" validate:"min=25,max=50"`
	LookbackDays int `toml:"lookback_days" validate:"min=1"`
}

type CatalogConfig struct {
	Files []string `toml:"files"` // JSON or YAML listing files, merged in order
}

func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Providers: ProvidersConfig{
			CompanyInfo: []string{ProviderPolygon, ProviderTwelveData},
			Series:      ProviderTwelveData,
			Price:       ProviderTwelveData,
			News:        ProviderFinnhub,
			TextGen:     ProviderGemini,
		},
		Polygon:      ProviderConfig{RateLimit: 5, Timeout: "30s"},
		TwelveData:   ProviderConfig{RateLimit: 5, Timeout: "30s"},
		AlphaVantage: ProviderConfig{RateLimit: 5.0 / 60.0, Timeout: "30s"},
		EODHD:        ProviderConfig{RateLimit: 10, Timeout: "30s", Exchange: "US"},
		Finnhub:      ProviderConfig{RateLimit: 5, Timeout: "30s"},
		Gemini: GeminiConfig{
			Model:       "gemini-2.5-flash",
			Temperature: 0.7,
		},
		Claude: ClaudeConfig{
			Model:       "claude-haiku-4-5",
			MaxTokens:   DefaultClaudeMaxTokens,
			Temperature: 0.7,
		},
		Sentiment: SentimentConfig{
			MaxArticles:  30,
			LookbackDays: 90,
		},
		Catalog: CatalogConfig{
			Files: []string{"./data/nasdaq.json"},
		},
	}
}

// LoadFromFiles loads defaults, then each file in order (later files override
// earlier ones), then ONETRADE_* environment overrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if port := os.Getenv("ONETRADE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("ONETRADE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if level := os.Getenv("ONETRADE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("ONETRADE_LOG_OUTPUT"); output != "" {
		if outputs := splitList(output); len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	if chain := os.Getenv("ONETRADE_PROVIDERS_COMPANY_INFO"); chain != "" {
		if names := splitList(chain); len(names) > 0 {
			config.Providers.CompanyInfo = names
		}
	}
	if series := os.Getenv("ONETRADE_PROVIDERS_SERIES"); series != "" {
		config.Providers.Series = series
	}
	if price := os.Getenv("ONETRADE_PROVIDERS_PRICE"); price != "" {
		config.Providers.Price = price
	}
	if news := os.Getenv("ONETRADE_PROVIDERS_NEWS"); news != "" {
		config.Providers.News = news
	}
	if textgen := os.Getenv("ONETRADE_PROVIDERS_TEXTGEN"); textgen != "" {
		config.Providers.TextGen = textgen
	}

	for name, pc := range config.providerConfigs() {
		prefix := "ONETRADE_" + strings.ToUpper(name) + "_"
		if baseURL := os.Getenv(prefix + "BASE_URL"); baseURL != "" {
			pc.BaseURL = baseURL
		}
		if rateLimit := os.Getenv(prefix + "RATE_LIMIT"); rateLimit != "" {
			if rl, err := strconv.ParseFloat(rateLimit, 64); err == nil {
				pc.RateLimit = rl
			}
		}
		if timeout := os.Getenv(prefix + "TIMEOUT"); timeout != "" {
			pc.Timeout = timeout
		}
	}
	if exchange := os.Getenv("ONETRADE_EODHD_EXCHANGE"); exchange != "" {
		config.EODHD.Exchange = exchange
	}

	if model := os.Getenv("ONETRADE_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if baseURL := os.Getenv("ONETRADE_GEMINI_BASE_URL"); baseURL != "" {
		config.Gemini.BaseURL = baseURL
	}
	if temperature := os.Getenv("ONETRADE_GEMINI_TEMPERATURE"); temperature != "" {
		if t, err := strconv.ParseFloat(temperature, 32); err == nil {
			config.Gemini.Temperature = float32(t)
		}
	}

	if model := os.Getenv("ONETRADE_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if baseURL := os.Getenv("ONETRADE_CLAUDE_BASE_URL"); baseURL != "" {
		config.Claude.BaseURL = baseURL
	}
	if maxTokens := os.Getenv("ONETRADE_CLAUDE_MAX_TOKENS"); maxTokens != "" {
		if mt, err := strconv.Atoi(maxTokens); err == nil {
			config.Claude.MaxTokens = mt
		}
	}
	if temperature := os.Getenv("ONETRADE_CLAUDE_TEMPERATURE"); temperature != "" {
		if t, err := strconv.ParseFloat(temperature, 32); err == nil {
			config.Claude.Temperature = float32(t)
		}
	}

	if maxArticles := os.Getenv("ONETRADE_SENTIMENT_MAX_ARTICLES"); maxArticles != "" {
		if ma, err := strconv.Atoi(maxArticles); err == nil {
			config.Sentiment.MaxArticles = ma
		}
	}
	if lookback := os.Getenv("ONETRADE_SENTIMENT_LOOKBACK_DAYS"); lookback != "" {
		if lb, err := strconv.Atoi(lookback); err == nil {
			config.Sentiment.LookbackDays = lb
		}
	}

	if files := os.Getenv("ONETRADE_CATALOG_FILES"); files != "" {
		if list := splitList(files); len(list) > 0 {
			config.Catalog.Files = list
		}
	}
}

// providerConfigs maps provider names to their sections.
func (c *Config) providerConfigs() map[string]*ProviderConfig {
	return map[string]*ProviderConfig{
		ProviderPolygon:      &c.Polygon,
		ProviderTwelveData:   &c.TwelveData,
		ProviderAlphaVantage: &c.AlphaVantage,
		ProviderEODHD:        &c.EODHD,
		ProviderFinnhub:      &c.Finnhub,
	}
}

// ProviderConfig returns the section for a market-data provider name.
func (c *Config) ProviderConfig(name string) (*ProviderConfig, bool) {
	pc, ok := c.providerConfigs()[strings.ToLower(name)]
	return pc, ok
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

func splitList(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
