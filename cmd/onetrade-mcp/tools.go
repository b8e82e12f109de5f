package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createSearchStocksTool returns the search_stocks tool definition
func createSearchStocksTool() mcp.Tool {
	return mcp.NewTool("search_stocks",
		mcp.WithDescription("Search the stock listing by company name or ticker symbol"),
		mcp.WithString("query",
			mcp.Description("Case-insensitive substring of the name or symbol; empty lists everything"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default: 20, max: 200)"),
		),
	)
}

// createStockDetailTool returns the stock_detail tool definition
func createStockDetailTool() mcp.Tool {
	return mcp.NewTool("stock_detail",
		mcp.WithDescription("Company profile, price trends, current price and a Buy/Wait/Sell news sentiment for one ticker"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Ticker symbol, e.g. AAPL"),
		),
	)
}
