// Package registry implements the HTTP client for the public ELI act registry.
// It lists act metadata per (publisher, year) and retrieves per-act PDF text.
package registry

import (
	"context"
	"io"
)

// Act is one document's metadata as returned by the registry.
// Status carries the registry's own vocabulary, not the caller-facing
// status taxonomy.
type Act struct {
	Address        string `json:"address"`
	Publisher      string `json:"publisher"`
	Year           int    `json:"year"`
	Pos            int    `json:"pos"`
	Title          string `json:"title"`
	Status         string `json:"status,omitempty"`
	Type           string `json:"type,omitempty"`
	DisplayAddress string `json:"displayAddress,omitempty"`
	Promulgation   string `json:"promulgation,omitempty"`
	ChangeDate     string `json:"changeDate,omitempty"`
}

// DocumentResult is a stream of one act's PDF text along with its
// reported length. The caller must close Body.
type DocumentResult struct {
	Body          io.ReadCloser
	ContentLength int64
}

// System defines the registry operations the rest of the service depends on.
type System interface {
	// Acts lists the acts published by the given publisher in the given year.
	Acts(ctx context.Context, publisher string, year int) ([]Act, error)
	// Document streams the PDF text of the act at (publisher, year, pos).
	// Returns ErrDocumentNotFound when the registry has no text for it.
	Document(ctx context.Context, publisher string, year, pos int) (*DocumentResult, error)
}
