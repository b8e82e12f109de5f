package server

import (
	"net/http"
	"strings"

	"github.com/ternarybob/onetrade/internal/handlers"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Panel stream; the upgrade handshake is a GET
	mux.HandleFunc(streamPrefix, allow(s.app.StreamHandler.HandleStream, http.MethodGet))

	// Stocks
	mux.HandleFunc("/api/stocks", allow(s.app.StockHandler.ListHandler, http.MethodGet))
	mux.HandleFunc("/api/stocks/", allow(s.app.StockHandler.DetailHandler, http.MethodGet))

	// System
	mux.HandleFunc("/api/version", allow(s.app.APIHandler.VersionHandler, http.MethodGet))
	mux.HandleFunc("/api/health", allow(s.app.APIHandler.HealthHandler, http.MethodGet))

	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// allow restricts h to methods. Other methods get a JSON 405 with an Allow header.
func allow(h http.HandlerFunc, methods ...string) http.HandlerFunc {
	allowed := strings.Join(methods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		for _, m := range methods {
			if r.Method == m {
				h(w, r)
				return
			}
		}
		w.Header().Set("Allow", allowed)
		handlers.WriteError(w, http.StatusMethodNotAllowed, "method "+r.Method+" not allowed")
	}
}
