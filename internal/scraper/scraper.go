package scraper

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/maltedev/price-scout/internal/catalog"
	"github.com/maltedev/price-scout/internal/config"
	"github.com/maltedev/price-scout/internal/models"
)

// Fetcher retrieves the raw HTML behind a URL. Network failures, timeouts
// and non-HTML responses all surface as a single error at this boundary.
type Fetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// Service runs the whole search pipeline: catalog lookup, concurrent
// per-site scraping, aggregation and ranking. It holds no per-request
// state; every search is independent.
type Service struct {
	fetcher Fetcher
	catalog *catalog.Catalog
	cfg     config.ScraperConfig
	logger  *slog.Logger
}

func NewService(fetcher Fetcher, cat *catalog.Catalog, cfg config.ScraperConfig, logger *slog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		catalog: cat,
		cfg:     cfg,
		logger:  logger.With("component", "scraper"),
	}
}

// Search resolves the country's search URLs, scrapes the reliable sites
// concurrently and returns the ranked results. Per-site failures are
// absorbed inside the pipeline; an empty result list is a valid outcome,
// never an error.
func (s *Service) Search(ctx context.Context, country, query string) (*models.SearchResponse, error) {
	logger := s.logger.With("search_id", uuid.NewString())

	entries := s.catalog.URLsFor(country, query)
	logger.Info("resolved search urls", "country", country, "query", query, "sites", len(entries))

	results := s.fetchPrices(ctx, logger, country, query, entries)
	if results == nil {
		results = []models.ProductResult{}
	}
	logger.Info("search complete", "results", len(results))

	return &models.SearchResponse{
		Results: results,
		Query:   query,
		Country: country,
	}, nil
}

// fetchPrices scrapes every allow-listed site concurrently and ranks the
// flattened results. Each site writes into its own slot, so the branches
// share no mutable state; the coordinator waits for the full set before
// ranking — a slow site delays the request but never loses the others'
// results.
func (s *Service) fetchPrices(ctx context.Context, logger *slog.Logger, country, query string, entries []models.SiteEntry) []models.ProductResult {
	reliable := make(map[string]struct{}, len(s.cfg.ReliableSites))
	for _, name := range s.cfg.ReliableSites {
		reliable[name] = struct{}{}
	}

	selected := make([]models.SiteEntry, 0, len(entries))
	for _, entry := range entries {
		if _, ok := reliable[entry.Name]; ok {
			selected = append(selected, entry)
		}
	}

	partial := make([][]models.ProductResult, len(selected))
	var wg sync.WaitGroup
	for i, entry := range selected {
		wg.Add(1)
		go func(i int, entry models.SiteEntry) {
			defer wg.Done()
			partial[i] = s.scrapeSite(ctx, logger, entry, country)
		}(i, entry)
	}
	wg.Wait()

	var all []models.ProductResult
	for _, list := range partial {
		all = append(all, list...)
	}

	return s.rank(logger, all, query)
}

// scrapeSite fetches one site's search page and extracts products from it,
// preferring structured data and falling back to the heuristic scan. It
// never fails: any fetch error is logged and the site contributes zero
// results.
func (s *Service) scrapeSite(ctx context.Context, logger *slog.Logger, entry models.SiteEntry, country string) []models.ProductResult {
	html, err := s.fetcher.FetchHTML(ctx, entry.SearchURL)
	if err != nil {
		logger.Error("failed to fetch site", "site", entry.Name, "url", entry.SearchURL, "error", err)
		return nil
	}

	results := s.extractStructured(html, entry.SearchURL, country, entry.Name)
	if len(results) == 0 {
		results = s.extractHeuristic(html, entry.SearchURL, country, entry.Name)
	}

	logger.Info("scraped site", "site", entry.Name, "results", len(results))
	return results
}
