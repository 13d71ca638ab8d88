// Package search implements the fetch-and-filter pipeline: year-range
// validation, (publisher, year) fan-out against the registry, and the
// status/keyword predicate over the fetched records.
package search

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"lexview/internal/filters"
	"lexview/internal/registry"
	"lexview/internal/search/metrics"
	"lexview/pkg/pagination"
)

type service struct {
	registry   registry.System
	logger     *slog.Logger
	metrics    *metrics.Metrics
	pagination pagination.Config
	workers    int
}

// New creates the search system. workers controls fetch parallelism;
// values below 2 preserve the strictly sequential reference behavior.
func New(
	reg registry.System,
	logger *slog.Logger,
	m *metrics.Metrics,
	pagination pagination.Config,
	workers int,
) System {
	if workers < 1 {
		workers = 1
	}
	return &service{
		registry:   reg,
		logger:     logger.With("system", "search"),
		metrics:    m,
		pagination: pagination,
		workers:    workers,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger, s.pagination)
}

// pair is one (publisher, year) fetch unit.
type pair struct {
	publisher filters.Publisher
	year      int
}

func (s *service) Search(ctx context.Context, f *filters.Filters) ([]registry.Act, error) {
	lower, upper := f.YearLower(), f.YearUpper()
	if lower > upper {
		return nil, &DateRangeError{Lower: lower, Upper: upper}
	}

	start := time.Now()
	defer func() {
		s.metrics.ObserveSearch(start)
	}()

	pairs := enumeratePairs(f.Publisher(), lower, upper)

	fetched := make([][]registry.Act, len(pairs))
	if s.workers > 1 {
		// Parallel fetches write into order-indexed slots, so the
		// concatenated order equals the sequential order.
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.workers)
		for i, p := range pairs {
			g.Go(func() error {
				fetched[i] = s.fetch(gctx, p)
				return nil
			})
		}
		g.Wait()
	} else {
		for i, p := range pairs {
			fetched[i] = s.fetch(ctx, p)
		}
	}

	var raw []registry.Act
	for _, acts := range fetched {
		raw = append(raw, acts...)
	}

	results := Filter(raw, f)
	s.logger.Info(
		"search complete",
		"pairs", len(pairs),
		"fetched", len(raw),
		"matched", len(results),
	)
	return results, nil
}

// enumeratePairs lists fetch units in the deterministic contract order:
// years ascending, and DU before MP when no publisher is set.
func enumeratePairs(publisher filters.Publisher, lower, upper int) []pair {
	var pairs []pair
	for year := lower; year <= upper; year++ {
		if publisher == filters.PublisherAny {
			pairs = append(pairs, pair{filters.PublisherDU, year}, pair{filters.PublisherMP, year})
			continue
		}
		pairs = append(pairs, pair{publisher, year})
	}
	return pairs
}

// fetch performs one registry call. Failures degrade to zero records so
// one bad (publisher, year) pair cannot abort a multi-year search.
func (s *service) fetch(ctx context.Context, p pair) []registry.Act {
	start := time.Now()
	acts, err := s.registry.Acts(ctx, string(p.publisher), p.year)
	s.metrics.ObserveFetch(start)

	if err != nil {
		s.metrics.IncrementFetchFailure()
		s.logger.Warn(
			"registry fetch failed, continuing with zero records",
			"publisher", p.publisher,
			"year", p.year,
			"error", err,
		)
		return nil
	}

	return acts
}
