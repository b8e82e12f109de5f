package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/services/catalog"
)

// mockDetailLoader implements handlers.DetailLoader for testing
type mockDetailLoader struct {
	loadFunc func(ctx context.Context, ticker string) (*models.StockDetail, error)
}

func (m *mockDetailLoader) LoadDetail(ctx context.Context, ticker string) (*models.StockDetail, error) {
	return m.loadFunc(ctx, ticker)
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Stock{
		{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology"},
		{Symbol: "AMZN", Name: "Amazon.com, Inc."},
		{Symbol: "MSFT", Name: "Microsoft Corporation"},
	})
}

func TestHandleSearchStocks(t *testing.T) {
	handler := handleSearchStocks(testCatalog(), arbor.NewLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"query": "a",
		"limit": float64(1),
	}))

	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, `## Stocks matching "a" (3 results)`)
	assert.Contains(t, text, "| AAPL | Apple Inc. | Technology |  |")
	assert.NotContains(t, text, "AMZN")
	assert.Contains(t, text, "_2 more not shown._")
}

func TestHandleSearchStocks_NoResults(t *testing.T) {
	handler := handleSearchStocks(testCatalog(), arbor.NewLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{"query": "zzz"}))

	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No results found.")
}

func TestHandleStockDetail(t *testing.T) {
	price := 189.5
	one, absent := 1.25, (*float64)(nil)
	loader := &mockDetailLoader{loadFunc: func(ctx context.Context, ticker string) (*models.StockDetail, error) {
		assert.Equal(t, "AAPL", ticker)
		return &models.StockDetail{
			Ticker: ticker,
			Info: &models.Resolution{
				Text:     "Apple designs phones.",
				Origin:   models.OriginSynthesizedText,
				Provider: "gemini",
			},
			Trends: models.TrendSet{
				{Offset: 1, Label: "1D", Percent: &one},
				{Offset: 5, Label: "1W", Percent: absent},
			},
			Price:          &price,
			SentimentError: &models.PanelError{Panel: models.PanelSentiment, Label: "News unavailable", Message: "x"},
		}, nil
	}}
	handler := handleStockDetail(loader, testCatalog(), arbor.NewLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{"ticker": " aapl "}))

	require.NoError(t, err)
	text := resultText(t, result)
	assert.True(t, strings.HasPrefix(text, "# Apple Inc. (AAPL)"))
	assert.Contains(t, text, "189.50")
	assert.Contains(t, text, "- 1D: +1.25%")
	assert.Contains(t, text, "- 1W: n/a")
	assert.Contains(t, text, "_News unavailable_")
	assert.Contains(t, text, "Apple designs phones.")
	assert.Contains(t, text, "_Source: gemini (synthesized_text)_")
}

func TestHandleStockDetail_Errors(t *testing.T) {
	loader := &mockDetailLoader{loadFunc: func(ctx context.Context, ticker string) (*models.StockDetail, error) {
		return nil, errors.New("deadline")
	}}
	handler := handleStockDetail(loader, testCatalog(), arbor.NewLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "ticker parameter is required")

	result, err = handler(context.Background(), callRequest(map[string]interface{}{"ticker": "AAPL"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Detail error: deadline")
}
