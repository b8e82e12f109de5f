package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/handlers"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// handleSearchStocks implements the search_stocks tool
func handleSearchStocks(catalog handlers.StockSearcher, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := strings.TrimSpace(request.GetString("query", ""))

		// Parse limit (default: 20, max: 200)
		limit := request.GetInt("limit", 20)
		if limit <= 0 {
			limit = 20
		}
		if limit > 200 {
			limit = 200
		}

		matches := catalog.Search(query)
		logger.Debug().Str("query", query).Int("matches", len(matches)).Msg("search_stocks")

		return textResult(formatStockList(query, matches, limit)), nil
	}
}

// handleStockDetail implements the stock_detail tool
func handleStockDetail(details handlers.DetailLoader, catalog handlers.StockSearcher, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if err != nil || ticker == "" {
			return textResult("Error: ticker parameter is required"), nil
		}

		detail, err := details.LoadDetail(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("LoadDetail failed")
			return textResult(fmt.Sprintf("Detail error: %v", err)), nil
		}

		name := ticker
		if stock, ok := catalog.Lookup(ticker); ok && stock.Name != "" {
			name = stock.Name
		}

		return textResult(formatStockDetail(detail, name)), nil
	}
}
