package library

import (
	"errors"
	"net/http"

	"lexview/internal/registry"
)

// Domain errors for library operations.
var (
	ErrNotFound    = errors.New("document not found in library")
	ErrDuplicate   = errors.New("document already catalogued")
	ErrFileMissing = errors.New("cached document file not found")
	ErrTooLarge    = errors.New("document exceeds maximum size")
	ErrInvalidAct  = errors.New("invalid act reference")
)

// MapHTTPStatus maps library domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, registry.ErrDocumentNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrFileMissing) {
		return http.StatusGone
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidAct) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
