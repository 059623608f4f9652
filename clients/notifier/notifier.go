package notifier

import (
	"time"
)

// AlertSeverity indicates the kind of status change being reported.
type AlertSeverity string

const (
	// SeverityError means a refresh cycle failed outright (all queries lost).
	SeverityError AlertSeverity = "error"
	// SeverityRecovered means the first successful cycle after a failed one.
	SeverityRecovered AlertSeverity = "recovered"
)

// StatusAlert contains the data for a refresh-cycle status notification.
type StatusAlert struct {
	Severity AlertSeverity
	Message  string

	// Refresh cycle detail
	FailedQueries int
	TotalQueries  int

	// Market set detail
	MarketCount int  // markets currently served to the renderer
	Stale       bool // true when the served set predates the failed cycle

	Timestamp time.Time
}

// Notifier is the interface for sending status alerts to various channels.
type Notifier interface {
	// SendStatusAlert sends a refresh-cycle status notification.
	SendStatusAlert(alert StatusAlert)

	// Close cleans up any resources.
	Close() error
}

// MultiNotifier broadcasts alerts to multiple notifiers.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a new MultiNotifier with the given notifiers.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	// Filter out nil notifiers
	var active []Notifier
	for _, n := range notifiers {
		if n != nil {
			active = append(active, n)
		}
	}
	return &MultiNotifier{notifiers: active}
}

// SendStatusAlert sends the alert to all registered notifiers.
func (m *MultiNotifier) SendStatusAlert(alert StatusAlert) {
	for _, n := range m.notifiers {
		n.SendStatusAlert(alert)
	}
}

// Close closes all registered notifiers.
func (m *MultiNotifier) Close() error {
	var lastErr error
	for _, n := range m.notifiers {
		if err := n.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Count returns the number of active notifiers.
func (m *MultiNotifier) Count() int {
	return len(m.notifiers)
}
