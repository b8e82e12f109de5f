package handlers

import (
	"context"

	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/services/detail"
)

// StockSearcher finds stocks in the listing catalog.
type StockSearcher interface {
	Search(query string) []models.Stock
	Lookup(symbol string) (models.Stock, bool)
}

// DetailLoader loads a complete detail view.
type DetailLoader interface {
	LoadDetail(ctx context.Context, ticker string) (*models.StockDetail, error)
}

// DetailStreamer opens a detail session that publishes each panel as it completes.
type DetailStreamer interface {
	Open(ctx context.Context, ticker string, sink detail.Sink) *detail.Session
}
