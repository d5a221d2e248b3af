package scraper

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/maltedev/price-scout/internal/models"
)

// dedupKeyLen is how much of the lowercased product name identifies a
// duplicate. Distinct products sharing a 30-char prefix collapse to one.
const dedupKeyLen = 30

// rank filters the flattened per-site results for query relevance, drops
// near-duplicates, sorts ascending by price and truncates to the
// configured maximum.
func (s *Service) rank(logger *slog.Logger, all []models.ProductResult, query string) []models.ProductResult {
	terms := strings.Fields(strings.ToLower(query))

	var relevant []models.ProductResult
	for _, result := range all {
		if matchesQuery(result.ProductName, terms) {
			relevant = append(relevant, result)
		}
	}

	deduped := dedupeByName(relevant)

	type pricedResult struct {
		result models.ProductResult
		value  float64
	}

	priced := make([]pricedResult, 0, len(deduped))
	for _, result := range deduped {
		value, err := strconv.ParseFloat(result.Price, 64)
		if err != nil {
			// Extractors guarantee parseable prices; reaching this
			// branch means one of them broke that invariant.
			logger.Error("dropping result with unparseable price",
				"price", result.Price, "product", result.ProductName, "source", result.Source)
			continue
		}
		priced = append(priced, pricedResult{result: result, value: value})
	}

	sort.SliceStable(priced, func(i, j int) bool {
		return priced[i].value < priced[j].value
	})

	limit := min(len(priced), s.cfg.MaxResults)
	ranked := make([]models.ProductResult, 0, limit)
	for _, p := range priced[:limit] {
		ranked = append(ranked, p.result)
	}
	return ranked
}

// matchesQuery keeps a result when at least one query term longer than 3
// characters appears in the lowercased product name. A query with no such
// term admits nothing.
func matchesQuery(name string, terms []string) bool {
	lower := strings.ToLower(name)
	for _, term := range terms {
		if len(term) > 3 && strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// dedupeByName keeps the first result seen for each name key, in input
// order.
func dedupeByName(results []models.ProductResult) []models.ProductResult {
	seen := make(map[string]struct{}, len(results))
	unique := make([]models.ProductResult, 0, len(results))
	for _, result := range results {
		key := nameKey(result.ProductName)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, result)
	}
	return unique
}

func nameKey(name string) string {
	runes := []rune(strings.ToLower(name))
	if len(runes) > dedupKeyLen {
		runes = runes[:dedupKeyLen]
	}
	return string(runes)
}
