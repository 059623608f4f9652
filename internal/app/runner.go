package app

import (
	"context"
	"net/http"
	clts "polydash/clients"
	"polydash/clients/notifier"
	"polydash/config"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Runner owns the refresh loop and the canonical market set. The set is
// replaced wholesale on every successful refresh; a failed refresh keeps the
// previous set and marks it stale.
type Runner struct {
	clients    *clts.Clients
	cfg        *config.Config
	aggregator *Aggregator
	filters    *FilterState

	mu        sync.RWMutex
	marketSet []Market
	updatedAt time.Time
	stale     bool
	lastErr   string
	cycleDown bool

	refreshing atomic.Bool
	viewServer *http.Server
	startTime  time.Time
}

func NewRunner(clients *clts.Clients, cfg *config.Config) *Runner {
	return &Runner{
		clients:    clients,
		cfg:        cfg,
		aggregator: NewAggregator(clients.Logger, clients.Gamma, cfg.Markets.PageLimit, cfg.Markets.TagSlugs),
		filters:    NewFilterState(cfg.Dashboard.DefaultThreshold),
	}
}

func (r *Runner) Run(ctx context.Context) error {
	r.startTime = time.Now()
	logger := r.clients.Logger
	cfg := r.cfg

	logger.Info("starting market dashboard",
		zap.Int("pageLimit", cfg.Markets.PageLimit),
		zap.Duration("refreshInterval", cfg.Markets.RefreshInterval),
		zap.Strings("tagSlugs", cfg.Markets.TagSlugs),
		zap.Int("defaultThreshold", cfg.Dashboard.DefaultThreshold),
	)

	// Initial refresh before the ticker starts. A failure here is not fatal;
	// the dashboard comes up empty and the loop keeps trying.
	r.Refresh(ctx)

	if cfg.ViewServer.Enabled {
		r.startViewServer(cfg.ViewServer.Port)
		logger.Info("view server started", zap.Int("port", cfg.ViewServer.Port))
	}

	go r.runRefreshLoop(ctx, cfg.Markets.RefreshInterval)

	<-ctx.Done()
	logger.Info("runner shutting down")

	if r.viewServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = r.viewServer.Shutdown(shutdownCtx)
		shutdownCancel()
	}

	if err := r.clients.Notifier.Close(); err != nil {
		logger.Warn("failed to close notifier", zap.Error(err))
	}

	return nil
}

// runRefreshLoop re-fetches the market set on a fixed interval. The ticker
// never stops on refresh failure.
func (r *Runner) runRefreshLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Refresh(ctx)
		}
	}
}

// Refresh runs one fetch, process, publish cycle. A cycle already in flight
// makes this call a no-op, so a slow upstream never stacks requests.
func (r *Runner) Refresh(ctx context.Context) {
	if !r.refreshing.CompareAndSwap(false, true) {
		r.clients.Logger.Debug("refresh already in flight, skipping")
		return
	}
	defer r.refreshing.Store(false)

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result, err := r.aggregator.FetchAll(fetchCtx)
	if err != nil {
		r.recordFailure(result, err)
		return
	}

	r.publish(processMarkets(result.Markets), result)
}

// recordFailure marks the current set stale without discarding it, and
// alerts on the transition into the failed state.
func (r *Runner) recordFailure(result AggregateResult, err error) {
	r.mu.Lock()
	r.stale = len(r.marketSet) > 0
	r.lastErr = err.Error()
	wasDown := r.cycleDown
	r.cycleDown = true
	served := len(r.marketSet)
	r.mu.Unlock()

	r.clients.Logger.Error("market refresh failed, serving previous set",
		zap.Int("served", served),
		zap.Error(err),
	)

	if !wasDown {
		r.clients.Notifier.SendStatusAlert(notifier.StatusAlert{
			Severity:      notifier.SeverityError,
			Message:       err.Error(),
			FailedQueries: result.FailedQueries,
			TotalQueries:  result.TotalQueries,
			MarketCount:   served,
			Stale:         served > 0,
			Timestamp:     time.Now(),
		})
	}
}

// publish replaces the market set wholesale and alerts if this refresh
// recovered from a failed state.
func (r *Runner) publish(markets []Market, result AggregateResult) {
	r.mu.Lock()
	r.marketSet = markets
	r.updatedAt = time.Now()
	r.stale = false
	r.lastErr = ""
	wasDown := r.cycleDown
	r.cycleDown = false
	r.mu.Unlock()

	topMarket := ""
	if len(markets) > 0 {
		topMarket = shortID(string(markets[0].ID))
	}
	r.clients.Logger.Info("market set refreshed",
		zap.Int("fetched", len(result.Markets)),
		zap.Int("retained", len(markets)),
		zap.Int("failedQueries", result.FailedQueries),
		zap.String("topMarket", topMarket),
	)

	if wasDown {
		r.clients.Notifier.SendStatusAlert(notifier.StatusAlert{
			Severity:      notifier.SeverityRecovered,
			FailedQueries: result.FailedQueries,
			TotalQueries:  result.TotalQueries,
			MarketCount:   len(markets),
			Timestamp:     time.Now(),
		})
	}
}

// ToggleCategory, SetThreshold, and SetSortKey expose filter mutations to
// the view server. Each returns whether the mutation was accepted.
func (r *Runner) ToggleCategory(cat Category) bool { return r.filters.ToggleCategory(cat) }
func (r *Runner) SetThreshold(v int) bool          { return r.filters.SetThreshold(v) }
func (r *Runner) SetSortKey(k SortKey) bool        { return r.filters.SetSortKey(k) }

// Snapshot builds the renderer-facing view: the canonical set projected
// through the current filters, plus freshness metadata.
func (r *Runner) Snapshot() View {
	filters := r.filters.Snapshot()

	r.mu.RLock()
	defer r.mu.RUnlock()

	visible := recompute(r.marketSet, filters)
	views := make([]MarketView, 0, len(visible))
	for _, m := range visible {
		views = append(views, newMarketView(m))
	}

	v := View{
		Markets: views,
		Total:   len(r.marketSet),
		Stale:   r.stale,
		Filters: filters,
	}
	if !r.updatedAt.IsZero() {
		v.UpdatedAt = r.updatedAt.UTC().Format(time.RFC3339)
	}
	if r.lastErr != "" {
		v.LastError = r.lastErr
	}
	if !r.startTime.IsZero() {
		v.Uptime = time.Since(r.startTime).Round(time.Second).String()
	}
	return v
}
