// Package library implements the local document library: downloaded act
// PDFs on disk plus a catalog of their metadata. Downloads are idempotent
// per (publisher, year, pos); a document already present is reused.
package library

import (
	"time"

	"github.com/google/uuid"
)

// Document represents a locally cached act PDF and its catalog entry.
type Document struct {
	ID           uuid.UUID `json:"id"`
	Publisher    string    `json:"publisher"`
	Year         int       `json:"year"`
	Pos          int       `json:"pos"`
	Title        string    `json:"title"`
	Filename     string    `json:"filename"`
	SizeBytes    int64     `json:"size_bytes"`
	PageCount    *int      `json:"page_count"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// FetchCommand identifies the act to download. Title is optional display
// metadata carried over from the search results.
type FetchCommand struct {
	Publisher string
	Year      int
	Pos       int
	Title     string
}
