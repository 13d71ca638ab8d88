package search

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"lexview/internal/filters"
	"lexview/pkg/handlers"
	"lexview/pkg/pagination"
	"lexview/pkg/routes"
)

// ErrInvalidRequest indicates a malformed search request body.
var ErrInvalidRequest = errors.New("invalid search request")

// Handler provides the HTTP endpoint for search operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines filter criteria and pagination for the search endpoint.
// Nil year bounds keep the full supported range.
type SearchRequest struct {
	Publisher string   `json:"publisher"`
	YearLower *int     `json:"year_lower"`
	YearUpper *int     `json:"year_upper"`
	Status    string   `json:"status"`
	Keywords  []string `json:"keywords"`
	pagination.PageRequest
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "search"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for search endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/search",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Search},
		},
	}
}

// Search accepts filter criteria and pagination in the request body and
// returns the matching page of acts. An inverted year range yields a 422
// carrying both bounds.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	f := req.Filters(h.logger)
	req.PageRequest.Normalize(h.pagination)

	acts, err := h.sys.Search(r.Context(), f)
	if err != nil {
		var dre *DateRangeError
		if errors.As(err, &dre) {
			h.logger.Warn("inverted year range", "lower", dre.Lower, "upper", dre.Upper)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":      dre.Error(),
				"year_lower": dre.Lower,
				"year_upper": dre.Upper,
			})
			return
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pagination.Slice(acts, req.PageRequest))
}

// Filters builds the validated filter model from the raw request values.
// Invalid values degrade per the filter model's fail-open rules.
func (r *SearchRequest) Filters(logger *slog.Logger) *filters.Filters {
	f := filters.New(logger)

	f.SetPublisher(r.Publisher)
	if r.YearLower != nil {
		f.SetYearLower(*r.YearLower)
	}
	if r.YearUpper != nil {
		f.SetYearUpper(*r.YearUpper)
	}
	if r.Status != "" {
		f.SetStatus(filters.Status(r.Status))
	}
	for _, kw := range r.Keywords {
		f.AddKeyword(kw)
	}

	return f
}
