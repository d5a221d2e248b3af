package models

// MaxProductNameLen bounds product names at creation time so downstream
// display and dedup logic never see unbounded titles.
const MaxProductNameLen = 100

// SearchQuery is the caller's input: a country code and a free-text query.
type SearchQuery struct {
	Country string `json:"country"`
	Query   string `json:"query"`
}

// SiteEntry is one site's fully-formed search-results URL for the current
// query, produced by the catalog per request.
type SiteEntry struct {
	Name      string `json:"name"`
	SearchURL string `json:"url"`
}

// ProductResult is the unit of output: one product offer found on one site.
// Price is the decimal string extracted from the page; the extractors
// guarantee it parses as a non-negative number.
type ProductResult struct {
	Link        string `json:"link"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	ProductName string `json:"productName"`
	Source      string `json:"source"`
}

// NewProductResult builds a ProductResult, truncating the product name.
func NewProductResult(link, price, currency, name, source string) ProductResult {
	return ProductResult{
		Link:        link,
		Price:       price,
		Currency:    currency,
		ProductName: TruncateName(name),
		Source:      source,
	}
}

// TruncateName caps a product name at MaxProductNameLen runes.
func TruncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= MaxProductNameLen {
		return name
	}
	return string(runes[:MaxProductNameLen])
}

// SearchResponse is the final, ordered answer for one search. Results are
// sorted ascending by numeric price and never mutated after construction.
type SearchResponse struct {
	Results []ProductResult `json:"results"`
	Query   string          `json:"query"`
	Country string          `json:"country"`
}
