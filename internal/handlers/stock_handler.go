package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/services/detail"
	"github.com/ternarybob/onetrade/internal/services/sentiment"
)

const (
	defaultStockLimit = 50
	maxStockLimit     = 500

	stockPathPrefix = "/api/stocks/"
)

// StockHandler serves catalog search and the assembled detail view.
type StockHandler struct {
	catalog StockSearcher
	details DetailLoader
	logger  arbor.ILogger
}

func NewStockHandler(catalog StockSearcher, details DetailLoader, logger arbor.ILogger) *StockHandler {
	return &StockHandler{
		catalog: catalog,
		details: details,
		logger:  logger,
	}
}

type stockListResponse struct {
	Query  string         `json:"query"`
	Total  int            `json:"total"`
	Stocks []models.Stock `json:"stocks"`
}

// detailResponse is the detail view plus presentation extras.
type detailResponse struct {
	*models.StockDetail
	Listing         *models.Stock `json:"listing,omitempty"`
	ExplanationHTML string        `json:"explanation_html,omitempty"`
}

// ListHandler handles GET /api/stocks?q=&limit=
func (h *StockHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := GetLimitParam(r, defaultStockLimit, maxStockLimit)

	matches := h.catalog.Search(query)
	total := len(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	h.logger.Debug().
		Str("query", query).
		Int("total", total).
		Int("returned", len(matches)).
		Msg("Stock search")

	WriteJSON(w, http.StatusOK, stockListResponse{
		Query:  query,
		Total:  total,
		Stocks: matches,
	})
}

// DetailHandler handles GET /api/stocks/{ticker}
func (h *StockHandler) DetailHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ticker := TickerFromPath(r.URL.Path, stockPathPrefix)
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	result, err := h.details.LoadDetail(r.Context(), ticker)
	if err != nil {
		switch {
		case errors.Is(err, detail.ErrTickerRequired):
			WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			WriteError(w, http.StatusGatewayTimeout, "detail load timed out")
		case errors.Is(err, context.Canceled):
			h.logger.Debug().Str("ticker", ticker).Msg("Client went away before detail loaded")
		default:
			h.logger.Error().Err(err).Str("ticker", ticker).Msg("Failed to load detail")
			WriteError(w, http.StatusInternalServerError, "failed to load detail")
		}
		return
	}

	resp := detailResponse{StockDetail: result}
	if stock, ok := h.catalog.Lookup(ticker); ok {
		resp.Listing = &stock
	}
	if result.Sentiment != nil && result.Sentiment.Explanation != "" {
		html, err := sentiment.RenderExplanationHTML(result.Sentiment.Explanation)
		if err != nil {
			h.logger.Warn().Err(err).Str("ticker", ticker).Msg("Failed to render explanation")
		} else {
			resp.ExplanationHTML = html
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}
