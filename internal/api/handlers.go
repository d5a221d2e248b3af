package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/maltedev/price-scout/internal/models"
)

// Searcher runs one price search. Satisfied by scraper.Service.
type Searcher interface {
	Search(ctx context.Context, country, query string) (*models.SearchResponse, error)
}

type Handlers struct {
	searcher Searcher
	logger   *slog.Logger
}

func NewHandlers(searcher Searcher, logger *slog.Logger) *Handlers {
	return &Handlers{
		searcher: searcher,
		logger:   logger,
	}
}

// SearchRequest represents the search request body
type SearchRequest struct {
	Country string `json:"country"`
	Query   string `json:"query"`
}

// Root lists the available endpoints.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Price Comparison Tool API",
		"endpoints": []string{"/search", "/health"},
	})
}

// SearchPrices handles price search requests. Zero results is a valid,
// successful outcome and returns 200 with an empty list, never 404.
func (h *Handlers) SearchPrices(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Country == "" {
		h.respondError(w, http.StatusBadRequest, "country is required")
		return
	}

	if req.Query == "" {
		h.respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	resp, err := h.searcher.Search(r.Context(), req.Country, req.Query)
	if err != nil {
		h.logger.Error("search failed", "error", err, "country", req.Country, "query", req.Query)
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
