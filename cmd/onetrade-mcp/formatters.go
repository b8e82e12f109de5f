package main

import (
	"fmt"
	"strings"

	"github.com/ternarybob/onetrade/internal/models"
)

// formatStockList formats catalog matches as a markdown table
func formatStockList(query string, stocks []models.Stock, limit int) string {
	var sb strings.Builder
	if query == "" {
		sb.WriteString(fmt.Sprintf("## Stocks (%d listed)\n\n", len(stocks)))
	} else {
		sb.WriteString(fmt.Sprintf("## Stocks matching \"%s\" (%d results)\n\n", query, len(stocks)))
	}

	if len(stocks) == 0 {
		sb.WriteString("No results found.\n")
		return sb.String()
	}

	shown := stocks
	if len(shown) > limit {
		shown = shown[:limit]
	}

	sb.WriteString("| Symbol | Name | Sector | Industry |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, s := range shown {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", s.Symbol, s.Name, s.Sector, s.Industry))
	}

	if len(stocks) > len(shown) {
		sb.WriteString(fmt.Sprintf("\n_%d more not shown._\n", len(stocks)-len(shown)))
	}
	return sb.String()
}

// formatStockDetail formats an assembled detail view as markdown
func formatStockDetail(d *models.StockDetail, fallbackName string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s (%s)\n\n", d.DisplayName(fallbackName), d.Ticker))

	sb.WriteString("## Price\n")
	switch {
	case d.PriceError != nil:
		sb.WriteString(fmt.Sprintf("_%s_\n\n", d.PriceError.Label))
	case d.Price != nil:
		sb.WriteString(fmt.Sprintf("%.2f\n\n", *d.Price))
	}

	sb.WriteString("## Trend\n")
	if d.TrendError != nil {
		sb.WriteString(fmt.Sprintf("_%s_\n\n", d.TrendError.Label))
	} else {
		for _, t := range d.Trends {
			if t.Percent == nil {
				sb.WriteString(fmt.Sprintf("- %s: n/a\n", t.Label))
				continue
			}
			sb.WriteString(fmt.Sprintf("- %s: %+.2f%%\n", t.Label, *t.Percent))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Sentiment\n")
	if d.SentimentError != nil {
		sb.WriteString(fmt.Sprintf("_%s_\n\n", d.SentimentError.Label))
	} else if d.Sentiment != nil {
		if d.Sentiment.HasDecision() {
			sb.WriteString(fmt.Sprintf("**Decision:** %s\n\n", d.Sentiment.Decision))
		}
		sb.WriteString(d.Sentiment.Explanation)
		sb.WriteString("\n\n")
	}

	sb.WriteString("## Company\n")
	if d.InfoError != nil {
		sb.WriteString(fmt.Sprintf("_%s_\n", d.InfoError.Label))
		return sb.String()
	}
	if d.Info == nil {
		return sb.String()
	}
	if p := d.Info.Profile; p != nil {
		writeField(&sb, "Exchange", p.Exchange)
		writeField(&sb, "Sector", p.Sector)
		writeField(&sb, "Industry", p.Industry)
		writeField(&sb, "Website", p.HomepageURL)
		if p.MarketCap != nil {
			sb.WriteString(fmt.Sprintf("**Market cap:** %.0f\n", *p.MarketCap))
		}
		if p.Employees != nil {
			sb.WriteString(fmt.Sprintf("**Employees:** %d\n", *p.Employees))
		}
		if p.Description != "" {
			sb.WriteString("\n" + p.Description + "\n")
		}
	} else if d.Info.Text != "" {
		sb.WriteString(d.Info.Text + "\n")
	}
	if d.Info.Origin != models.OriginLive {
		sb.WriteString(fmt.Sprintf("\n_Source: %s (%s)_\n", d.Info.Provider, d.Info.Origin))
	}
	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if value != "" {
		sb.WriteString(fmt.Sprintf("**%s:** %s\n", label, value))
	}
}
