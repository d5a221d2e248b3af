package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/maltedev/price-scout/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	resp    *models.SearchResponse
	err     error
	country string
	query   string
}

func (s *stubSearcher) Search(_ context.Context, country, query string) (*models.SearchResponse, error) {
	s.country = country
	s.query = query
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newTestHandlers(searcher Searcher) *Handlers {
	return NewHandlers(searcher, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doSearch(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.SearchPrices(rec, req)
	return rec
}

func TestSearchPrices(t *testing.T) {
	searcher := &stubSearcher{
		resp: &models.SearchResponse{
			Results: []models.ProductResult{
				{
					Link:        "https://www.amazon.com/dp/B0TEST",
					Price:       "999",
					Currency:    "USD",
					ProductName: "iPhone 16 Pro 128GB",
					Source:      "Amazon",
				},
			},
			Query:   "iPhone 16 Pro, 128GB",
			Country: "US",
		},
	}
	h := newTestHandlers(searcher)

	rec := doSearch(t, h, `{"country":"US","query":"iPhone 16 Pro, 128GB"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "US", searcher.country)
	assert.Equal(t, "iPhone 16 Pro, 128GB", searcher.query)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "999", resp.Results[0].Price)
	assert.Equal(t, "Amazon", resp.Results[0].Source)
}

func TestSearchPricesEmptyResultsIsOK(t *testing.T) {
	searcher := &stubSearcher{
		resp: &models.SearchResponse{
			Results: []models.ProductResult{},
			Query:   "iphone",
			Country: "US",
		},
	}
	h := newTestHandlers(searcher)

	rec := doSearch(t, h, `{"country":"US","query":"iphone"}`)

	// Zero results is a successful, empty outcome, never 404.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"results":[]`)
}

func TestSearchPricesValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"country":`},
		{"missing country", `{"query":"iphone"}`},
		{"missing query", `{"country":"US"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandlers(&stubSearcher{})
			rec := doSearch(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSearchPricesInternalError(t *testing.T) {
	h := newTestHandlers(&stubSearcher{err: errors.New("browser crashed")})

	rec := doSearch(t, h, `{"country":"US","query":"iphone"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "browser crashed")
}

func TestRoot(t *testing.T) {
	h := newTestHandlers(&stubSearcher{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Root(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/search")
}
