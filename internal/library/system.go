package library

import (
	"context"
	"io"

	"github.com/google/uuid"

	"lexview/pkg/lifecycle"
	"lexview/pkg/pagination"
)

// System defines the public contract for library operations.
type System interface {
	Handler() *Handler

	// Start registers the library directory and catalog schema bootstrap.
	Start(lc *lifecycle.Coordinator) error

	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Document], error)
	Find(ctx context.Context, id uuid.UUID) (*Document, error)

	// Fetch downloads the act's PDF unless a cached copy already exists.
	// The boolean reports whether a download actually happened.
	Fetch(ctx context.Context, cmd FetchCommand) (*Document, bool, error)

	// Open returns a reader over the cached PDF. The caller must close it.
	Open(ctx context.Context, id uuid.UUID) (io.ReadCloser, *Document, error)

	// Delete removes the catalog entry and the cached file. A missing
	// file yields ErrFileMissing, distinguishable from an OS-level
	// deletion failure.
	Delete(ctx context.Context, id uuid.UUID) error
}
