package app

import (
	"encoding/json"
	"math"
	"strconv"
)

// extractProbability derives the implied Yes probability from a market's raw
// outcomePrices field. The first outcome price is scaled to a 0-100 percentage
// and rounded to one decimal. Any parse failure yields 0; callers treat 0 as
// "no probability", never as a real price.
func extractProbability(raw json.RawMessage) float64 {
	prices, err := parseMaybeJSONStringArray(raw)
	if err != nil || len(prices) == 0 {
		return 0
	}

	p, err := strconv.ParseFloat(prices[0], 64)
	if err != nil {
		return 0
	}

	return math.Round(p*1000) / 10
}
