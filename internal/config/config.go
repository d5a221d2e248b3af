package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server  ServerConfig
	Browser BrowserConfig
	Scraper ScraperConfig
}

type ServerConfig struct {
	Port int
}

type BrowserConfig struct {
	Headless       bool
	TimeoutSeconds int
	NavRetries     int
}

// ScraperConfig holds the pipeline's business rules. The allow-list, the
// relevance substrings and the price band are configuration rather than
// literals so the pipeline can run against synthetic catalogs in tests.
type ScraperConfig struct {
	// ReliableSites names the catalog entries that actually get scraped.
	ReliableSites []string
	// RelevanceTerms gates heuristic anchors: an anchor survives when its
	// text contains any of these substrings (case-insensitive).
	RelevanceTerms []string
	// PriceBandMin/Max bound plausible prices; heuristic tokens outside
	// the open interval are rejected as stray numbers.
	PriceBandMin float64
	PriceBandMax float64
	// MaxStructured and MaxHeuristic cap the two extractors independently.
	MaxStructured int
	MaxAnchors    int
	MaxHeuristic  int
	// MaxResults caps the ranked output.
	MaxResults int
}

// DefaultScraperConfig returns the production rules: scrape the shopping
// aggregator, the US marketplace and the auction site, gate heuristic
// anchors on "iphone", accept prices strictly between 100 and 5000.
func DefaultScraperConfig() ScraperConfig {
	return ScraperConfig{
		ReliableSites:  []string{"Google Shopping", "Amazon", "eBay"},
		RelevanceTerms: []string{"iphone"},
		PriceBandMin:   100,
		PriceBandMax:   5000,
		MaxStructured:  10,
		MaxAnchors:     50,
		MaxHeuristic:   10,
		MaxResults:     20,
	}
}

func Load() (*Config, error) {
	defaults := DefaultScraperConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("PORT", 8080),
		},
		Browser: BrowserConfig{
			Headless:       getEnvBool("BROWSER_HEADLESS", true),
			TimeoutSeconds: getEnvInt("BROWSER_TIMEOUT", 30),
			NavRetries:     getEnvInt("BROWSER_NAV_RETRIES", 3),
		},
		Scraper: ScraperConfig{
			ReliableSites:  getEnvList("SCRAPER_RELIABLE_SITES", defaults.ReliableSites),
			RelevanceTerms: getEnvList("SCRAPER_RELEVANCE_TERMS", defaults.RelevanceTerms),
			PriceBandMin:   getEnvFloat("SCRAPER_PRICE_BAND_MIN", defaults.PriceBandMin),
			PriceBandMax:   getEnvFloat("SCRAPER_PRICE_BAND_MAX", defaults.PriceBandMax),
			MaxStructured:  getEnvInt("SCRAPER_MAX_STRUCTURED", defaults.MaxStructured),
			MaxAnchors:     getEnvInt("SCRAPER_MAX_ANCHORS", defaults.MaxAnchors),
			MaxHeuristic:   getEnvInt("SCRAPER_MAX_HEURISTIC", defaults.MaxHeuristic),
			MaxResults:     getEnvInt("SCRAPER_MAX_RESULTS", defaults.MaxResults),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Browser.TimeoutSeconds <= 0 {
		return fmt.Errorf("browser timeout must be positive: %d", c.Browser.TimeoutSeconds)
	}

	if c.Browser.NavRetries < 1 {
		return fmt.Errorf("at least 1 navigation attempt is required")
	}

	if c.Scraper.PriceBandMin < 0 || c.Scraper.PriceBandMin >= c.Scraper.PriceBandMax {
		return fmt.Errorf("invalid price band: [%v, %v]", c.Scraper.PriceBandMin, c.Scraper.PriceBandMax)
	}

	if c.Scraper.MaxStructured < 1 || c.Scraper.MaxAnchors < 1 || c.Scraper.MaxHeuristic < 1 {
		return fmt.Errorf("extractor caps must be at least 1")
	}

	if c.Scraper.MaxResults < 1 {
		return fmt.Errorf("max results must be at least 1")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
