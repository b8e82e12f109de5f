package common

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// standardKeyEnv lists the conventional environment variables for each provider.
var standardKeyEnv = map[string][]string{
	ProviderPolygon:      {"POLYGON_API_KEY"},
	ProviderTwelveData:   {"TWELVEDATA_API_KEY", "TWELVE_DATA_API_KEY"},
	ProviderAlphaVantage: {"ALPHAVANTAGE_API_KEY", "ALPHA_VANTAGE_API_KEY"},
	ProviderEODHD:        {"EODHD_API_KEY"},
	ProviderFinnhub:      {"FINNHUB_API_KEY"},
	ProviderGemini:       {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	ProviderClaude:       {"ANTHROPIC_API_KEY"},
}

// ResolveAPIKey returns the credential for a provider. Resolution order:
// ONETRADE_<NAME>_API_KEY, the provider's conventional variable, then the
// config value. An empty result is not an error; clients report a missing
// credential when they are called.
func ResolveAPIKey(name string, configFallback string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	if v := os.Getenv("ONETRADE_" + strings.ToUpper(name) + "_API_KEY"); v != "" {
		return v
	}
	for _, env := range standardKeyEnv[name] {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return configFallback
}

// LoadDotEnv loads KEY=value files into the environment without overriding
// variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}
