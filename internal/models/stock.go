package models

// Stock is one row of an exchange ticker listing. Field names follow the
// Nasdaq/NYSE screener exports.
type Stock struct {
	Symbol    string `json:"symbol" yaml:"symbol"`
	Name      string `json:"name" yaml:"name"`
	LastSale  string `json:"lastsale,omitempty" yaml:"lastsale,omitempty"`
	NetChange string `json:"netchange,omitempty" yaml:"netchange,omitempty"`
	PctChange string `json:"pctchange,omitempty" yaml:"pctchange,omitempty"`
	Volume    string `json:"volume,omitempty" yaml:"volume,omitempty"`
	MarketCap string `json:"marketCap,omitempty" yaml:"marketCap,omitempty"`
	Country   string `json:"country,omitempty" yaml:"country,omitempty"`
	IPOYear   string `json:"ipoyear,omitempty" yaml:"ipoyear,omitempty"`
	Industry  string `json:"industry,omitempty" yaml:"industry,omitempty"`
	Sector    string `json:"sector,omitempty" yaml:"sector,omitempty"`
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`
}
