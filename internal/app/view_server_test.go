package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postFilters(t *testing.T, r *Runner, body string) (*httptest.ResponseRecorder, FilterSnapshot) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/filters", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.handleFilterUpdate(rec, req)

	var snap FilterSnapshot
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return rec, snap
}

func TestHandleFilterUpdate_Threshold(t *testing.T) {
	r := newTestRunner(newMockSource(), &mockAlertSink{})

	rec, snap := postFilters(t, r, `{"threshold": 85}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if snap.Threshold != 85 {
		t.Errorf("unexpected threshold: %d", snap.Threshold)
	}
}

func TestHandleFilterUpdate_InvalidThresholdSilentlyRejected(t *testing.T) {
	r := newTestRunner(newMockSource(), &mockAlertSink{})

	rec, snap := postFilters(t, r, `{"threshold": 150}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if snap.Threshold != 70 {
		t.Errorf("expected prior threshold retained, got %d", snap.Threshold)
	}
}

func TestHandleFilterUpdate_Sort(t *testing.T) {
	r := newTestRunner(newMockSource(), &mockAlertSink{})

	_, snap := postFilters(t, r, `{"sort": "expiry"}`)
	if snap.SortKey != SortByExpiry {
		t.Errorf("unexpected sort key: %s", snap.SortKey)
	}

	_, snap = postFilters(t, r, `{"sort": "alphabetical"}`)
	if snap.SortKey != SortByExpiry {
		t.Errorf("expected prior sort key retained, got %s", snap.SortKey)
	}
}

func TestHandleFilterUpdate_ToggleCategory(t *testing.T) {
	r := newTestRunner(newMockSource(), &mockAlertSink{})

	_, snap := postFilters(t, r, `{"toggle_category": "Politics"}`)
	if len(snap.Active) != 1 || snap.Active[0] != CategoryFinance {
		t.Fatalf("unexpected active set: %v", snap.Active)
	}

	// Last remaining category cannot be deactivated.
	_, snap = postFilters(t, r, `{"toggle_category": "Finance"}`)
	if len(snap.Active) != 1 || snap.Active[0] != CategoryFinance {
		t.Errorf("expected active set unchanged, got %v", snap.Active)
	}
}

func TestHandleFilterUpdate_CombinedMutations(t *testing.T) {
	r := newTestRunner(newMockSource(), &mockAlertSink{})

	_, snap := postFilters(t, r, `{"threshold": 90, "sort": "volume"}`)
	if snap.Threshold != 90 || snap.SortKey != SortByVolume {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestHandleFilterUpdate_BadJSON(t *testing.T) {
	r := newTestRunner(newMockSource(), &mockAlertSink{})

	rec, _ := postFilters(t, r, `{"threshold": `)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if got := r.filters.Snapshot().Threshold; got != 70 {
		t.Errorf("state changed on bad request: threshold %d", got)
	}
}
