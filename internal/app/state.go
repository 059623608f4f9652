package app

import "sync"

// SortKey selects the view ordering.
type SortKey string

const (
	SortByProbability SortKey = "probability" // descending
	SortByVolume      SortKey = "volume"      // descending
	SortByExpiry      SortKey = "expiry"      // ascending, open-ended last
)

// ValidSortKey reports whether k names a known sort order.
func ValidSortKey(k SortKey) bool {
	switch k {
	case SortByProbability, SortByVolume, SortByExpiry:
		return true
	}
	return false
}

// FilterState holds the user-selected view filters. Every mutator validates
// its input and leaves prior state intact on rejection; the active category
// set is never allowed to become empty.
type FilterState struct {
	mu        sync.RWMutex
	active    map[Category]bool
	threshold int
	sortKey   SortKey
}

// FilterSnapshot is an immutable copy of the filter state, safe to hand to
// the query engine and the renderer.
type FilterSnapshot struct {
	Active    []Category `json:"active_categories"`
	Threshold int        `json:"threshold"`
	SortKey   SortKey    `json:"sort"`
}

// NewFilterState returns a state with every category active, the given
// probability threshold, and probability ordering.
func NewFilterState(threshold int) *FilterState {
	if threshold < 0 || threshold > 100 {
		threshold = 70
	}
	return &FilterState{
		active: map[Category]bool{
			CategoryFinance:  true,
			CategoryPolitics: true,
		},
		threshold: threshold,
		sortKey:   SortByProbability,
	}
}

// ToggleCategory flips one category's membership in the active set. Unknown
// categories and deactivating the last remaining category are rejected.
func (s *FilterState) ToggleCategory(cat Category) bool {
	if !ValidCategory(cat) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active[cat] {
		if len(s.active) == 1 {
			return false
		}
		delete(s.active, cat)
		return true
	}
	s.active[cat] = true
	return true
}

// SetThreshold replaces the minimum probability. Values outside 0-100 are
// rejected.
func (s *FilterState) SetThreshold(v int) bool {
	if v < 0 || v > 100 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.threshold = v
	return true
}

// SetSortKey replaces the view ordering. Unknown keys are rejected.
func (s *FilterState) SetSortKey(k SortKey) bool {
	if !ValidSortKey(k) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortKey = k
	return true
}

// Snapshot returns a point-in-time copy. Active categories come back in
// fixed precedence order so the renderer sees a stable list.
func (s *FilterState) Snapshot() FilterSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Category, 0, len(s.active))
	for _, cat := range categoryOrder {
		if s.active[cat] {
			active = append(active, cat)
		}
	}
	return FilterSnapshot{
		Active:    active,
		Threshold: s.threshold,
		SortKey:   s.sortKey,
	}
}
