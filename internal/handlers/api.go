package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/common"
)

type APIHandler struct {
	providers common.ProvidersConfig
	logger    arbor.ILogger
}

func NewAPIHandler(providers common.ProvidersConfig, logger arbor.ILogger) *APIHandler {
	if logger == nil {
		logger = common.GetLogger()
	}
	return &APIHandler{
		providers: providers,
		logger:    logger,
	}
}

// providerSummary names the provider selected for each concern. It never
// carries credentials.
type providerSummary struct {
	CompanyInfo []string `json:"company_info"`
	Series      string   `json:"series"`
	Price       string   `json:"price"`
	News        string   `json:"news"`
	TextGen     string   `json:"textgen"`
}

type versionResponse struct {
	common.BuildInfo
	Providers providerSummary `json:"providers"`
}

// VersionHandler returns build metadata and the active provider selection
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, versionResponse{
		BuildInfo: common.GetBuildInfo(),
		Providers: providerSummary{
			CompanyInfo: h.providers.CompanyInfo,
			Series:      h.providers.Series,
			Price:       h.providers.Price,
			News:        h.providers.News,
			TextGen:     h.providers.TextGen,
		},
	})
}

// HealthHandler returns health check status
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
