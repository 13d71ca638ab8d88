package search

import (
	"context"

	"lexview/internal/filters"
	"lexview/internal/registry"
)

// System defines the public contract for search operations.
type System interface {
	Handler() *Handler

	// Search fetches acts for the filter's (publisher, year) pairs and
	// applies the status and keyword predicates. The result order is
	// deterministic: years ascending, DU before MP within a year when
	// both are queried, registry order within a pair. Returns
	// *DateRangeError when the filter's year bounds are inverted.
	Search(ctx context.Context, f *filters.Filters) ([]registry.Act, error)
}
