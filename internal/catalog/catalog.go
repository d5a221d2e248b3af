package catalog

import (
	"strings"

	"github.com/maltedev/price-scout/internal/models"
)

// Site is one catalog entry: a display name and a search-URL template the
// query gets appended to.
type Site struct {
	Name string
	URL  string
}

// Catalog maps countries to search sites and currencies. The tables are
// read-only after construction; lookups are pure.
type Catalog struct {
	sites        map[string][]Site
	currencies   map[string]string
	defaultSites []Site
}

var defaultSiteTable = map[string][]Site{
	"US": {
		{Name: "Google Shopping", URL: "https://www.google.com/search?tbm=shop&q="},
		{Name: "Amazon", URL: "https://www.amazon.com/s?k="},
		{Name: "eBay", URL: "https://www.ebay.com/sch/i.html?_nkw="},
		{Name: "Walmart", URL: "https://www.walmart.com/search?q="},
		{Name: "BestBuy", URL: "https://www.bestbuy.com/site/searchpage.jsp?st="},
	},
	"IN": {
		{Name: "Google Shopping", URL: "https://www.google.co.in/search?tbm=shop&q="},
		{Name: "Amazon India", URL: "https://www.amazon.in/s?k="},
		{Name: "Flipkart", URL: "https://www.flipkart.com/search?q="},
		{Name: "Myntra", URL: "https://www.myntra.com/"},
		{Name: "Snapdeal", URL: "https://www.snapdeal.com/search?keyword="},
	},
	"UK": {
		{Name: "Google Shopping", URL: "https://www.google.co.uk/search?tbm=shop&q="},
		{Name: "Amazon UK", URL: "https://www.amazon.co.uk/s?k="},
		{Name: "eBay UK", URL: "https://www.ebay.co.uk/sch/i.html?_nkw="},
		{Name: "Argos", URL: "https://www.argos.co.uk/search/"},
	},
}

var defaultCurrencyTable = map[string]string{
	"US": "USD",
	"IN": "INR",
	"UK": "GBP",
	"CA": "CAD",
	"AU": "AUD",
	"EU": "EUR",
}

var defaultFallbackSites = []Site{
	{Name: "Google Shopping", URL: "https://www.google.com/search?tbm=shop&q="},
}

// New returns a catalog backed by the built-in tables.
func New() *Catalog {
	return NewWithTables(defaultSiteTable, defaultCurrencyTable, defaultFallbackSites)
}

// NewWithTables returns a catalog over custom tables. Used by tests to run
// the pipeline against synthetic sites.
func NewWithTables(sites map[string][]Site, currencies map[string]string, fallback []Site) *Catalog {
	return &Catalog{
		sites:        sites,
		currencies:   currencies,
		defaultSites: fallback,
	}
}

// URLsFor resolves the site list for a country and builds each site's
// search URL by appending the query with spaces replaced by "+". No other
// character is escaped; the templates already carry the query parameter.
// Unknown countries fall back to the single-entry default list.
func (c *Catalog) URLsFor(country, query string) []models.SiteEntry {
	sites, ok := c.sites[strings.ToUpper(country)]
	if !ok {
		sites = c.defaultSites
	}

	escaped := strings.ReplaceAll(query, " ", "+")
	entries := make([]models.SiteEntry, 0, len(sites))
	for _, site := range sites {
		entries = append(entries, models.SiteEntry{
			Name:      site.Name,
			SearchURL: site.URL + escaped,
		})
	}
	return entries
}

// CurrencyFor returns the country's currency code, defaulting to USD.
func (c *Catalog) CurrencyFor(country string) string {
	if currency, ok := c.currencies[strings.ToUpper(country)]; ok {
		return currency
	}
	return "USD"
}
