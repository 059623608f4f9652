package app

import (
	"context"
	"fmt"
	"sync"

	"polydash/clients/gammaapi"

	"go.uber.org/zap"
)

// MarketSource lists markets for one scoped query.
// *gammaapi.GammaApiClient implements it.
type MarketSource interface {
	ListMarkets(ctx context.Context, query gammaapi.MarketQuery) ([]gammaapi.GammaMarket, error)
}

// AggregateResult carries one merged fetch and how many of its queries were
// lost along the way.
type AggregateResult struct {
	Markets       []gammaapi.GammaMarket
	FailedQueries int
	TotalQueries  int
}

// Aggregator fans a refresh out into one untagged query plus one query per
// configured tag slug, then merges the results into a single deduplicated
// list.
type Aggregator struct {
	logger    *zap.Logger
	source    MarketSource
	pageLimit int
	tagSlugs  []string
}

func NewAggregator(logger *zap.Logger, source MarketSource, pageLimit int, tagSlugs []string) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		logger:    logger,
		source:    source,
		pageLimit: pageLimit,
		tagSlugs:  tagSlugs,
	}
}

// queries returns the scoped queries in declared order: the untagged query
// first, then one per tag slug. Merge order follows this ordering, so it is
// stable across refreshes.
func (a *Aggregator) queries() []gammaapi.MarketQuery {
	qs := make([]gammaapi.MarketQuery, 0, len(a.tagSlugs)+1)
	qs = append(qs, gammaapi.MarketQuery{Limit: a.pageLimit})
	for _, tag := range a.tagSlugs {
		qs = append(qs, gammaapi.MarketQuery{TagSlug: tag, Limit: a.pageLimit})
	}
	return qs
}

// FetchAll runs every query concurrently and merges whatever succeeded,
// deduplicated by market ID with first-seen order winning. A failing query is
// logged and its results skipped; FetchAll errors only when every query
// fails.
func (a *Aggregator) FetchAll(ctx context.Context) (AggregateResult, error) {
	queries := a.queries()
	results := make([][]gammaapi.GammaMarket, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q gammaapi.MarketQuery) {
			defer wg.Done()
			markets, err := a.source.ListMarkets(ctx, q)
			if err != nil {
				a.logger.Warn("market query failed",
					zap.String("tagSlug", q.TagSlug),
					zap.Error(err),
				)
				errs[i] = err
				return
			}
			results[i] = markets
		}(i, q)
	}
	wg.Wait()

	res := AggregateResult{TotalQueries: len(queries)}
	var firstErr error
	for _, err := range errs {
		if err != nil {
			res.FailedQueries++
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if res.FailedQueries == res.TotalQueries {
		return res, fmt.Errorf("all %d market queries failed: %w", res.TotalQueries, firstErr)
	}

	seen := make(map[string]struct{})
	for _, markets := range results {
		for _, m := range markets {
			id := string(m.ID)
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			res.Markets = append(res.Markets, m)
		}
	}

	a.logger.Debug("aggregated market queries",
		zap.Int("queries", res.TotalQueries),
		zap.Int("failed", res.FailedQueries),
		zap.Int("markets", len(res.Markets)),
	)

	return res, nil
}
