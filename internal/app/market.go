package app

import "polydash/clients/gammaapi"

// Market is a raw Gamma record annotated with the two computed dashboard
// attributes.
type Market struct {
	gammaapi.GammaMarket

	Probability float64  `json:"probability"`
	Category    Category `json:"category"`
}

// processMarkets annotates raw records and keeps only those satisfying the
// market-set invariant: a detected category, a probability strictly between
// 0 and 100, and an open, non-archived market. Input order is preserved.
func processMarkets(raw []gammaapi.GammaMarket) []Market {
	out := make([]Market, 0, len(raw))
	for i := range raw {
		m := &raw[i]
		if m.Closed || m.Archived {
			continue
		}

		prob := extractProbability(m.OutcomePrices)
		if prob <= 0 || prob >= 100 {
			continue
		}

		cat := classify(m)
		if cat == CategoryNone {
			continue
		}

		out = append(out, Market{
			GammaMarket: *m,
			Probability: prob,
			Category:    cat,
		})
	}
	return out
}
