package app

// View is the renderer-facing snapshot: the visible market list after
// filtering and sorting, plus freshness metadata.
type View struct {
	Markets   []MarketView   `json:"markets"`
	Total     int            `json:"total"`
	UpdatedAt string         `json:"updated_at,omitempty"`
	Stale     bool           `json:"stale"`
	LastError string         `json:"last_error,omitempty"`
	Filters   FilterSnapshot `json:"filters"`
	Uptime    string         `json:"uptime,omitempty"`
}

// MarketView is one renderer-ready row.
type MarketView struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Category    Category `json:"category"`
	Probability float64  `json:"probability"`
	Volume      float64  `json:"volume"`
	EndDate     string   `json:"end_date"`
	URL         string   `json:"url,omitempty"`
	EventTitle  string   `json:"event_title,omitempty"`
}

const noEndDateLabel = "No end date"

func newMarketView(m Market) MarketView {
	endDate := noEndDateLabel
	if t := endDateOrSentinel(m.EndDate); !t.Equal(farFuture) {
		endDate = t.UTC().Format("Jan 2, 2006")
	}

	v := MarketView{
		ID:          string(m.ID),
		Question:    nz(m.Question, "(untitled market)"),
		Category:    m.Category,
		Probability: m.Probability,
		Volume:      m.Volume.Float(),
		EndDate:     endDate,
		URL:         m.MarketURL(),
	}
	if ev := m.PrimaryEvent(); ev != nil {
		v.EventTitle = ev.Title
	}
	return v
}
