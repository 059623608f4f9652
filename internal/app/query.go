package app

import (
	"sort"
	"time"
)

// farFuture is the expiry sentinel for markets without a usable end date.
// It sorts open-ended markets after every dated one.
var farFuture = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// endDateOrSentinel parses a market's end date, substituting the far-future
// sentinel when missing or malformed.
func endDateOrSentinel(endDate string) time.Time {
	if endDate == "" {
		return farFuture
	}
	t, err := time.Parse(time.RFC3339, endDate)
	if err != nil {
		return farFuture
	}
	return t
}

// recompute projects the canonical market set through the filter state into
// the ordered view list. Pure function of its inputs: the same market set
// and filters always yield the same list.
func recompute(markets []Market, filters FilterSnapshot) []Market {
	active := make(map[Category]bool, len(filters.Active))
	for _, cat := range filters.Active {
		active[cat] = true
	}

	view := make([]Market, 0, len(markets))
	for _, m := range markets {
		if !active[m.Category] {
			continue
		}
		// Threshold is inclusive: a market at exactly the threshold stays.
		if m.Probability < float64(filters.Threshold) {
			continue
		}
		view = append(view, m)
	}

	switch filters.SortKey {
	case SortByVolume:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Volume.Float() > view[j].Volume.Float()
		})
	case SortByExpiry:
		sort.SliceStable(view, func(i, j int) bool {
			return endDateOrSentinel(view[i].EndDate).Before(endDateOrSentinel(view[j].EndDate))
		})
	default:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Probability > view[j].Probability
		})
	}

	return view
}
