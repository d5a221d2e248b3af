package scraper

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/maltedev/price-scout/internal/models"
)

// extractStructured walks the page's JSON-LD blocks and turns embedded
// Product descriptions into results. Malformed blocks are skipped; an
// unparseable document yields an empty slice, never an error.
func (s *Service) extractStructured(html, pageURL, country, siteName string) []models.ProductResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var candidates []map[string]interface{}
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, script *goquery.Selection) {
		var data interface{}
		if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
			return
		}
		candidates = append(candidates, collectProducts(data)...)
	})

	if len(candidates) > s.cfg.MaxStructured {
		candidates = candidates[:s.cfg.MaxStructured]
	}

	var results []models.ProductResult
	for _, product := range candidates {
		name, _ := product["name"].(string)
		price, currency, ok := readOffer(product["offers"])
		if !ok || name == "" || price == "" {
			continue
		}

		// The ranking step sorts numerically; anything unparseable or
		// negative must be rejected here, not there.
		if value, err := strconv.ParseFloat(price, 64); err != nil || value < 0 {
			continue
		}

		if currency == "" {
			currency = s.catalog.CurrencyFor(country)
		}

		link, _ := product["url"].(string)
		if link == "" {
			link = pageURL
		}

		results = append(results, models.NewProductResult(link, price, currency, name, siteName))
	}

	return results
}

// collectProducts pulls Product objects out of one decoded JSON-LD value:
// a single object, a top-level list, or lists one level down under a key
// (the @graph convention).
func collectProducts(data interface{}) []map[string]interface{} {
	switch value := data.(type) {
	case map[string]interface{}:
		if isProduct(value) {
			return []map[string]interface{}{value}
		}

		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var products []map[string]interface{}
		for _, key := range keys {
			list, ok := value[key].([]interface{})
			if !ok {
				continue
			}
			for _, item := range list {
				if obj, ok := item.(map[string]interface{}); ok && isProduct(obj) {
					products = append(products, obj)
				}
			}
		}
		return products

	case []interface{}:
		var products []map[string]interface{}
		for _, item := range value {
			if obj, ok := item.(map[string]interface{}); ok && isProduct(obj) {
				products = append(products, obj)
			}
		}
		return products
	}

	return nil
}

func isProduct(obj map[string]interface{}) bool {
	typeName, _ := obj["@type"].(string)
	return typeName == "Product"
}

// readOffer extracts price and currency from an offers value, which may be
// a single object or a non-empty list (first element wins).
func readOffer(offers interface{}) (price, currency string, ok bool) {
	if list, isList := offers.([]interface{}); isList {
		if len(list) == 0 {
			return "", "", false
		}
		offers = list[0]
	}

	obj, isObj := offers.(map[string]interface{})
	if !isObj {
		return "", "", false
	}

	switch value := obj["price"].(type) {
	case string:
		price = strings.TrimSpace(value)
	case float64:
		price = strconv.FormatFloat(value, 'f', -1, 64)
	}

	currency, _ = obj["priceCurrency"].(string)
	return price, currency, true
}
