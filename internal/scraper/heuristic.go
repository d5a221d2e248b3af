package scraper

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/maltedev/price-scout/internal/models"
)

// minAnchorTextLen filters out navigation links and button labels; real
// product titles are longer than this.
const minAnchorTextLen = 20

// priceTokenPattern matches currency-like numbers: optional dollar sign,
// 1-4 leading digits, optional thousands groups, optional 2-digit cents.
var priceTokenPattern = regexp.MustCompile(`\$?\s*(\d{1,4}(?:[,.]?\d{3})*(?:\.\d{2})?)`)

// extractHeuristic is the fallback when a page carries no structured data:
// scan the first anchors in document order for product-like link text, then
// look for a plausible price in the surrounding element. Any problem with
// one anchor skips that anchor only.
func (s *Service) extractHeuristic(html, pageURL, country, siteName string) []models.ProductResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	currency := s.catalog.CurrencyFor(country)

	var results []models.ProductResult
	doc.Find("a[href]").EachWithBreak(func(i int, anchor *goquery.Selection) bool {
		if i >= s.cfg.MaxAnchors || len(results) >= s.cfg.MaxHeuristic {
			return false
		}

		text := strings.TrimSpace(anchor.Text())
		if utf8.RuneCountInString(text) < minAnchorTextLen || !s.matchesRelevanceTerm(text) {
			return true
		}

		// Scan the containing element for a price, leaving out the
		// anchor's own text so digits in the product title (storage
		// sizes, model numbers) cannot shadow the actual price.
		price, ok := s.findPlausiblePrice(surroundingText(anchor))
		if !ok {
			return true
		}

		href, _ := anchor.Attr("href")
		link, ok := resolveLink(href, pageURL)
		if !ok {
			return true
		}

		results = append(results, models.NewProductResult(link, price, currency, text, siteName))
		return true
	})

	return results
}

// surroundingText is the visible text of the anchor's immediate containing
// element with the anchor itself removed. An anchor without a parent yields
// an empty string and is skipped by the price scan.
func surroundingText(anchor *goquery.Selection) string {
	return anchor.Parent().Contents().NotSelection(anchor).Text()
}

func (s *Service) matchesRelevanceTerm(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range s.cfg.RelevanceTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// findPlausiblePrice scans text for currency-like tokens and returns the
// first one strictly inside the price band, stripped of "$" and ",".
// The band rejects stray numbers like page indices and star ratings.
func (s *Service) findPlausiblePrice(text string) (string, bool) {
	matches := priceTokenPattern.FindAllStringSubmatch(text, -1)
	for _, match := range matches {
		price := strings.ReplaceAll(strings.ReplaceAll(match[1], ",", ""), "$", "")
		value, err := strconv.ParseFloat(price, 64)
		if err != nil {
			continue
		}
		if value > s.cfg.PriceBandMin && value < s.cfg.PriceBandMax {
			return price, true
		}
	}
	return "", false
}

// resolveLink makes an anchor's href absolute: absolute URLs pass through,
// root-relative paths get the page's scheme and host, any other relative
// form is rejected.
func resolveLink(href, pageURL string) (string, bool) {
	if strings.HasPrefix(href, "http") {
		return href, true
	}

	if strings.HasPrefix(href, "/") {
		base, err := url.Parse(pageURL)
		if err != nil || base.Scheme == "" || base.Host == "" {
			return "", false
		}
		return base.Scheme + "://" + base.Host + href, true
	}

	return "", false
}
