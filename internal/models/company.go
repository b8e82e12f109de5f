package models

// Address is a company's postal address. Every part is optional.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// IsZero reports whether no part of the address is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// CompanyProfile is the normalized company fundamentals record shared by all
// company-info providers.
type CompanyProfile struct {
	Ticker      string   `json:"ticker"`
	Name        string   `json:"name"`
	Exchange    string   `json:"exchange,omitempty"`
	Market      string   `json:"market,omitempty"` // market or asset type, e.g. "stocks", "Common Stock"
	Currency    string   `json:"currency,omitempty"`
	Locale      string   `json:"locale,omitempty"` // country or locale
	Description string   `json:"description,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	Sector      string   `json:"sector,omitempty"`
	Address     Address  `json:"address"`
	HomepageURL string   `json:"homepage_url,omitempty"`
	MarketCap   *float64 `json:"market_cap,omitempty"`
	Employees   *int64   `json:"employees,omitempty"`

	// Source is the provider that produced the structural fields.
	Source string `json:"source,omitempty"`
}

// Usable reports whether the profile passes the quality predicate: a non-empty
// description. No other field is considered.
func (p *CompanyProfile) Usable() bool {
	return p != nil && p.Description != ""
}

// WithDescription returns a copy of the profile with only the description replaced.
func (p CompanyProfile) WithDescription(description string) CompanyProfile {
	if p.MarketCap != nil {
		v := *p.MarketCap
		p.MarketCap = &v
	}
	if p.Employees != nil {
		v := *p.Employees
		p.Employees = &v
	}
	p.Description = description
	return p
}

// Origin records where a resolved profile's description came from.
type Origin string

const (
	// OriginLive means a provider returned a usable profile.
	OriginLive Origin = "live"
	// OriginSynthesizedDescription means a provider profile had its empty description
	// replaced with generated text.
	OriginSynthesizedDescription Origin = "synthesized_description"
	// OriginSynthesizedText means no provider returned a profile and only generated
	// free-form text is available.
	OriginSynthesizedText Origin = "synthesized_text"
)

// Resolution is the output of the company-info fallback chain. Exactly one of
// Profile and Text is set.
type Resolution struct {
	Profile  *CompanyProfile `json:"profile,omitempty"`
	Text     string          `json:"text,omitempty"`
	Origin   Origin          `json:"origin"`
	Provider string          `json:"provider,omitempty"`
}
