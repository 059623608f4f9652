package app

import (
	"testing"

	"polydash/clients/gammaapi"
)

func annotated(id string, cat Category, prob float64, volume, endDate string) Market {
	return Market{
		GammaMarket: gammaapi.GammaMarket{
			ID:      gammaapi.FlexString(id),
			Volume:  gammaapi.FlexString(volume),
			EndDate: endDate,
		},
		Probability: prob,
		Category:    cat,
	}
}

func ids(markets []Market) []string {
	out := make([]string, 0, len(markets))
	for _, m := range markets {
		out = append(out, string(m.ID))
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRecompute_CategoryFilter(t *testing.T) {
	markets := []Market{
		annotated("f1", CategoryFinance, 90, "10", ""),
		annotated("p1", CategoryPolitics, 95, "20", ""),
	}
	filters := FilterSnapshot{
		Active:    []Category{CategoryFinance},
		Threshold: 0,
		SortKey:   SortByProbability,
	}

	got := recompute(markets, filters)
	if !equalIDs(ids(got), "f1") {
		t.Errorf("unexpected view: %v", ids(got))
	}
}

func TestRecompute_ThresholdInclusive(t *testing.T) {
	markets := []Market{
		annotated("below", CategoryFinance, 69.9, "1", ""),
		annotated("exact", CategoryFinance, 70, "1", ""),
		annotated("above", CategoryFinance, 70.1, "1", ""),
	}
	filters := FilterSnapshot{
		Active:    []Category{CategoryFinance, CategoryPolitics},
		Threshold: 70,
		SortKey:   SortByProbability,
	}

	got := recompute(markets, filters)
	if !equalIDs(ids(got), "above", "exact") {
		t.Errorf("expected exact-threshold market retained, got %v", ids(got))
	}
}

func TestRecompute_SortByProbability(t *testing.T) {
	markets := []Market{
		annotated("mid", CategoryFinance, 50, "1", ""),
		annotated("high", CategoryFinance, 90, "1", ""),
		annotated("low", CategoryFinance, 10, "1", ""),
	}
	filters := FilterSnapshot{
		Active:  []Category{CategoryFinance},
		SortKey: SortByProbability,
	}

	got := recompute(markets, filters)
	if !equalIDs(ids(got), "high", "mid", "low") {
		t.Errorf("unexpected order: %v", ids(got))
	}
}

func TestRecompute_SortByVolume(t *testing.T) {
	markets := []Market{
		annotated("small", CategoryFinance, 50, "5", ""),
		annotated("missing", CategoryFinance, 50, "", ""),
		annotated("big", CategoryFinance, 50, "100", ""),
	}
	filters := FilterSnapshot{
		Active:  []Category{CategoryFinance},
		SortKey: SortByVolume,
	}

	// Unparsable volume counts as zero and sinks to the bottom.
	got := recompute(markets, filters)
	if !equalIDs(ids(got), "big", "small", "missing") {
		t.Errorf("unexpected order: %v", ids(got))
	}
}

func TestRecompute_SortByExpiry(t *testing.T) {
	markets := []Market{
		annotated("later", CategoryFinance, 50, "1", "2026-12-01T00:00:00Z"),
		annotated("dateless", CategoryFinance, 50, "1", ""),
		annotated("soon", CategoryFinance, 50, "1", "2026-09-01T00:00:00Z"),
		annotated("malformed", CategoryFinance, 50, "1", "not-a-date"),
	}
	filters := FilterSnapshot{
		Active:  []Category{CategoryFinance},
		SortKey: SortByExpiry,
	}

	got := recompute(markets, filters)
	if !equalIDs(ids(got), "soon", "later", "dateless", "malformed") {
		t.Errorf("expected dated markets first, open-ended last, got %v", ids(got))
	}
}

func TestRecompute_Empty(t *testing.T) {
	filters := FilterSnapshot{
		Active:  []Category{CategoryFinance, CategoryPolitics},
		SortKey: SortByProbability,
	}
	if got := recompute(nil, filters); len(got) != 0 {
		t.Errorf("expected empty view, got %d markets", len(got))
	}
}

func TestRecompute_Pure(t *testing.T) {
	markets := []Market{
		annotated("a", CategoryFinance, 80, "10", ""),
		annotated("b", CategoryPolitics, 75, "5", ""),
	}
	filters := FilterSnapshot{
		Active:    []Category{CategoryFinance, CategoryPolitics},
		Threshold: 70,
		SortKey:   SortByProbability,
	}

	first := ids(recompute(markets, filters))
	second := ids(recompute(markets, filters))
	if !equalIDs(first, second...) {
		t.Errorf("recompute not deterministic: %v vs %v", first, second)
	}
	// Source slice order untouched.
	if string(markets[0].ID) != "a" || string(markets[1].ID) != "b" {
		t.Error("recompute mutated its input")
	}
}
