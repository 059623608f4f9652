package app

import (
	"strings"

	"polydash/clients/gammaapi"
)

// Category is a dashboard classification bucket. A market belongs to at most
// one category.
type Category string

const (
	CategoryNone     Category = ""
	CategoryFinance  Category = "Finance"
	CategoryPolitics Category = "Politics"
)

// categoryOrder fixes classification precedence. Categories are checked in
// this order and the first keyword hit wins, so a market matching both
// buckets lands in Finance.
var categoryOrder = []Category{CategoryFinance, CategoryPolitics}

// categoryKeywords maps each category to its lowercase match terms. Matching
// is plain substring anywhere in the search text, not word-boundary aware.
var categoryKeywords = map[Category][]string{
	CategoryFinance: {
		"finance", "economy", "economic", "inflation", "federal reserve",
		"interest rate", "rate cut", "rate hike", "stock", "s&p", "nasdaq",
		"dow jones", "gdp", "recession", "treasury", "tariff",
		"bitcoin", "btc", "ethereum", "crypto", "market cap", "ipo", "earnings",
	},
	CategoryPolitics: {
		"politic", "election", "president", "senate", "congress", "parliament",
		"governor", "prime minister", "government", "ballot", "impeach",
		"democrat", "republican", "legislation", "supreme court", "nominee",
		"white house", "cabinet", "veto",
	},
}

// classify assigns a category to a raw market. The search text is built from
// the market's event category label, its tag labels and slugs, and the
// question itself, all lowercased. Classification depends only on the record,
// so the same input always yields the same category.
func classify(m *gammaapi.GammaMarket) Category {
	var parts []string
	if ev := m.PrimaryEvent(); ev != nil {
		if ev.Category != "" {
			parts = append(parts, ev.Category)
		}
		for _, tag := range ev.Tags {
			parts = append(parts, tag.Label+" "+tag.Slug)
		}
	}
	parts = append(parts, m.Question)
	searchText := strings.ToLower(strings.Join(parts, " "))

	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(searchText, kw) {
				return cat
			}
		}
	}
	return CategoryNone
}

// ValidCategory reports whether cat names a real classification bucket.
func ValidCategory(cat Category) bool {
	return cat == CategoryFinance || cat == CategoryPolitics
}
