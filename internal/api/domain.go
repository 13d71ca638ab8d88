package api

import (
	"fmt"

	"lexview/internal/config"
	"lexview/internal/library"
	librarymetrics "lexview/internal/library/metrics"
	"lexview/internal/search"
	searchmetrics "lexview/internal/search/metrics"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Search  search.System
	Library library.System
}

// NewDomain creates all domain systems from the API runtime and registers
// their lifecycle hooks.
func NewDomain(runtime *Runtime, cfg *config.Config) (*Domain, error) {
	searchSystem := search.New(
		runtime.Registry,
		runtime.Logger,
		searchmetrics.New(),
		runtime.Pagination,
		cfg.API.FetchWorkers,
	)

	librarySystem := library.New(
		runtime.Database.Connection(),
		runtime.Registry,
		runtime.Logger,
		librarymetrics.New(),
		runtime.Pagination,
		&cfg.Library,
	)

	if err := librarySystem.Start(runtime.Lifecycle); err != nil {
		return nil, fmt.Errorf("library start failed: %w", err)
	}

	return &Domain{
		Search:  searchSystem,
		Library: librarySystem,
	}, nil
}
