// Package eodhd provides a client for the EODHD (End of Day Historical Data) API.
package eodhd

import "github.com/ternarybob/onetrade/internal/provider"

// eodData represents a single day's end-of-day price data.
type eodData struct {
	DateStr       string              `json:"date"`
	Open          provider.FlexString `json:"open"`
	High          provider.FlexString `json:"high"`
	Low           provider.FlexString `json:"low"`
	Close         provider.FlexString `json:"close"`
	AdjustedClose provider.FlexString `json:"adjusted_close"`
	Volume        provider.FlexString `json:"volume"`
}

type eodResponse []eodData

// realTimeQuote is the delayed quote payload; "NA" marks missing values.
type realTimeQuote struct {
	Code          string              `json:"code"`
	Timestamp     int64               `json:"timestamp"`
	Close         provider.FlexString `json:"close"`
	PreviousClose provider.FlexString `json:"previousClose"`
}

type newsItem struct {
	DateStr string   `json:"date"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Link    string   `json:"link"`
	Symbols []string `json:"symbols"`
	Tags    []string `json:"tags"`
}

type newsResponse []newsItem

type fundamentalsResponse struct {
	General    *generalInfo `json:"General"`
	Highlights *highlights  `json:"Highlights"`
}

type generalInfo struct {
	Code              string              `json:"Code"`
	Type              string              `json:"Type"`
	Name              string              `json:"Name"`
	Exchange          string              `json:"Exchange"`
	CurrencyCode      string              `json:"CurrencyCode"`
	CountryISO        string              `json:"CountryISO"`
	Sector            string              `json:"Sector"`
	Industry          string              `json:"Industry"`
	Description       string              `json:"Description"`
	Address           string              `json:"Address"`
	WebURL            string              `json:"WebURL"`
	FullTimeEmployees provider.FlexString `json:"FullTimeEmployees"`
}

type highlights struct {
	MarketCapitalization provider.FlexString `json:"MarketCapitalization"`
}
