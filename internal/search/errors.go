package search

import (
	"errors"
	"fmt"
	"net/http"
)

// DateRangeError reports an inverted year range at search time.
// It is the only condition that aborts a search; everything else in the
// pipeline degrades to empty results.
type DateRangeError struct {
	Lower int
	Upper int
}

func (e *DateRangeError) Error() string {
	return fmt.Sprintf("start year (%d) cannot be greater than end year (%d)", e.Lower, e.Upper)
}

// MapHTTPStatus maps search errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	var dre *DateRangeError
	if errors.As(err, &dre) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
