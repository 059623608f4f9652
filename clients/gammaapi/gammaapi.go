package gammaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"polydash/config"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type GammaApiClient struct {
	logger       *zap.Logger
	httpClient   *http.Client
	gammaBaseURL string
}

func NewGammaApiClient(logger *zap.Logger, cfg *config.Config) *GammaApiClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GammaApiClient{
		logger: logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		gammaBaseURL: cfg.Polymarket.GammaAPIURL,
	}
}

// ---- Gamma API types (minimal; add fields as you need) ----

// FlexString decodes Gamma fields that arrive as either a JSON string or a
// bare number ("12345" vs 12345). Market IDs and volumes do both.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flex string: %s", string(data))
	}
	*f = FlexString(n.String())
	return nil
}

// Float returns the numeric value, or 0 if empty/unparsable.
func (f FlexString) Float() float64 {
	v, err := strconv.ParseFloat(string(f), 64)
	if err != nil {
		return 0
	}
	return v
}

type GammaTag struct {
	ID    FlexString `json:"id"`
	Label string     `json:"label"`
	Slug  string     `json:"slug"`
}

type GammaEvent struct {
	ID       FlexString `json:"id"`
	Slug     string     `json:"slug"`
	Title    string     `json:"title"`
	Category string     `json:"category"`
	Tags     []GammaTag `json:"tags"`
}

type GammaMarket struct {
	ID       FlexString `json:"id"`
	Slug     string     `json:"slug"`
	Question string     `json:"question"`

	// May be a JSON array of numeric strings or a JSON-string-encoded array.
	OutcomePrices json.RawMessage `json:"outcomePrices"`

	Volume    FlexString `json:"volume"`
	Liquidity FlexString `json:"liquidity"`
	EndDate   string     `json:"endDate"`

	// Status
	Active   bool `json:"active"`
	Closed   bool `json:"closed"`
	Archived bool `json:"archived"`

	// Markets carry zero or one associated event with category/tag metadata.
	Events []GammaEvent `json:"events"`
}

// PrimaryEvent returns the market's associated event, or nil.
func (m *GammaMarket) PrimaryEvent() *GammaEvent {
	if len(m.Events) == 0 {
		return nil
	}
	return &m.Events[0]
}

// MarketURL derives the outbound link to the source platform. The event slug
// is preferred; the market slug is the fallback for event-less markets.
func (m *GammaMarket) MarketURL() string {
	if ev := m.PrimaryEvent(); ev != nil && ev.Slug != "" {
		return "https://polymarket.com/event/" + url.PathEscape(ev.Slug)
	}
	if m.Slug != "" {
		return "https://polymarket.com/market/" + url.PathEscape(m.Slug)
	}
	return ""
}

// MarketQuery describes one scoped /markets request.
type MarketQuery struct {
	TagSlug string // empty = no tag scoping
	Limit   int
}

// ListMarkets fetches active, non-closed, non-archived markets sorted by
// descending volume, optionally scoped to a tag slug.
func (c *GammaApiClient) ListMarkets(ctx context.Context, query MarketQuery) ([]GammaMarket, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 100
	}

	u, err := url.Parse(c.gammaBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gammaBaseURL: %w", err)
	}
	u.Path = "/markets"

	q := u.Query()
	q.Set("active", "true")
	q.Set("closed", "false")
	q.Set("archived", "false")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("order", "volumeNum")
	q.Set("ascending", "false")
	if query.TagSlug != "" {
		q.Set("tag_slug", query.TagSlug)
	}
	u.RawQuery = q.Encode()

	var markets []GammaMarket
	if err := c.doGet(ctx, u.String(), &markets); err != nil {
		return nil, fmt.Errorf("list markets (tag=%q): %w", query.TagSlug, err)
	}

	return markets, nil
}

// doGet is a helper that performs a GET request and decodes JSON response.
func (c *GammaApiClient) doGet(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}
