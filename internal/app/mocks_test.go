package app

import (
	"context"
	"encoding/json"
	"sync"

	"polydash/clients/gammaapi"
	"polydash/clients/notifier"
)

// mockSource implements MarketSource with canned responses keyed by tag slug.
type mockSource struct {
	mu        sync.Mutex
	responses map[string][]gammaapi.GammaMarket
	errs      map[string]error
	calls     []string
}

func newMockSource() *mockSource {
	return &mockSource{
		responses: make(map[string][]gammaapi.GammaMarket),
		errs:      make(map[string]error),
	}
}

func (m *mockSource) ListMarkets(_ context.Context, query gammaapi.MarketQuery) ([]gammaapi.GammaMarket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, query.TagSlug)
	if err := m.errs[query.TagSlug]; err != nil {
		return nil, err
	}
	return m.responses[query.TagSlug], nil
}

func (m *mockSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockAlertSink implements notifier.Notifier and records alerts.
type mockAlertSink struct {
	mu     sync.Mutex
	alerts []notifier.StatusAlert
}

func (m *mockAlertSink) SendStatusAlert(alert notifier.StatusAlert) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, alert)
}

func (m *mockAlertSink) Close() error { return nil }

func (m *mockAlertSink) recorded() []notifier.StatusAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notifier.StatusAlert, len(m.alerts))
	copy(out, m.alerts)
	return out
}

// testMarket builds a raw market that survives processing: open, categorized
// via its question, and priced at prob/100.
func testMarket(id, question, prob string) gammaapi.GammaMarket {
	prices, _ := json.Marshal([]string{prob, "0"})
	return gammaapi.GammaMarket{
		ID:            gammaapi.FlexString(id),
		Question:      question,
		OutcomePrices: prices,
		Active:        true,
	}
}
