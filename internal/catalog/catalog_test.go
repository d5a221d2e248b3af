package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLsFor(t *testing.T) {
	c := New()

	tests := []struct {
		name          string
		country       string
		query         string
		expectedCount int
		expectedFirst string
	}{
		{
			name:          "US has five sites",
			country:       "US",
			query:         "iPhone 16 Pro, 128GB",
			expectedCount: 5,
			expectedFirst: "https://www.google.com/search?tbm=shop&q=iPhone+16+Pro,+128GB",
		},
		{
			name:          "lowercase country code",
			country:       "us",
			query:         "iphone",
			expectedCount: 5,
			expectedFirst: "https://www.google.com/search?tbm=shop&q=iphone",
		},
		{
			name:          "India has five sites",
			country:       "IN",
			query:         "boAt Airdopes",
			expectedCount: 5,
			expectedFirst: "https://www.google.co.in/search?tbm=shop&q=boAt+Airdopes",
		},
		{
			name:          "UK has four sites",
			country:       "UK",
			query:         "iphone",
			expectedCount: 4,
			expectedFirst: "https://www.google.co.uk/search?tbm=shop&q=iphone",
		},
		{
			name:          "unknown country falls back to default list",
			country:       "ZZ",
			query:         "iphone 16",
			expectedCount: 1,
			expectedFirst: "https://www.google.com/search?tbm=shop&q=iphone+16",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := c.URLsFor(tt.country, tt.query)
			require.Len(t, entries, tt.expectedCount)
			assert.Equal(t, tt.expectedFirst, entries[0].SearchURL)
		})
	}
}

func TestURLsForReplacesOnlySpaces(t *testing.T) {
	c := New()

	// Spaces become "+"; nothing else is escaped, commas and ampersands
	// pass through untouched.
	entries := c.URLsFor("US", "iPhone 16 Pro, 128GB & case")
	require.NotEmpty(t, entries)
	assert.Equal(t, "https://www.amazon.com/s?k=iPhone+16+Pro,+128GB+&+case", entries[1].SearchURL)
}

func TestURLsForSiteNames(t *testing.T) {
	c := New()

	entries := c.URLsFor("US", "iphone")
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}

	assert.Equal(t, []string{"Google Shopping", "Amazon", "eBay", "Walmart", "BestBuy"}, names)
}

func TestCurrencyFor(t *testing.T) {
	c := New()

	tests := []struct {
		country  string
		expected string
	}{
		{"US", "USD"},
		{"us", "USD"},
		{"IN", "INR"},
		{"UK", "GBP"},
		{"CA", "CAD"},
		{"AU", "AUD"},
		{"EU", "EUR"},
		{"ZZ", "USD"},
		{"", "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.CurrencyFor(tt.country))
		})
	}
}

func TestNewWithTables(t *testing.T) {
	c := NewWithTables(
		map[string][]Site{
			"XX": {{Name: "TestShop", URL: "https://shop.test/search?q="}},
		},
		map[string]string{"XX": "XTS"},
		[]Site{{Name: "Fallback", URL: "https://fallback.test/?q="}},
	)

	entries := c.URLsFor("xx", "red shoes")
	require.Len(t, entries, 1)
	assert.Equal(t, "TestShop", entries[0].Name)
	assert.Equal(t, "https://shop.test/search?q=red+shoes", entries[0].SearchURL)
	assert.Equal(t, "XTS", c.CurrencyFor("XX"))

	fallback := c.URLsFor("YY", "red shoes")
	require.Len(t, fallback, 1)
	assert.Equal(t, "Fallback", fallback[0].Name)
}
