package library

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"lexview/internal/filters"
	"lexview/pkg/handlers"
	"lexview/pkg/pagination"
	"lexview/pkg/routes"
)

// Handler provides HTTP endpoints for library operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// FetchRequest carries optional display metadata for a download.
type FetchRequest struct {
	Title string `json:"title"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "library"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for library endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/library",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/content", Handler: h.Content},
			{Method: "POST", Pattern: "/{publisher}/{year}/{pos}", Handler: h.Fetch},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns a paginated listing of the catalog, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single catalog entry by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidAct)
		return
	}

	doc, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

// Fetch downloads the referenced act unless a cached copy exists.
// Responds 201 when a download happened and 200 when the copy was reused.
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	cmd, err := fetchCommandFromPath(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req FetchRequest
	if r.Body != nil {
		// the body is optional; a decode failure just means no title
		json.NewDecoder(r.Body).Decode(&req)
	}
	cmd.Title = req.Title

	doc, downloaded, err := h.sys.Fetch(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	status := http.StatusOK
	if downloaded {
		status = http.StatusCreated
	}
	handlers.RespondJSON(w, status, doc)
}

// Content streams the cached PDF for the viewer.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidAct)
		return
	}

	body, doc, err := h.sys.Open(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.FormatInt(doc.SizeBytes, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}

// Delete removes the catalog entry and the cached file.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidAct)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func fetchCommandFromPath(r *http.Request) (FetchCommand, error) {
	publisher := r.PathValue("publisher")
	switch filters.Publisher(publisher) {
	case filters.PublisherDU, filters.PublisherMP:
	default:
		return FetchCommand{}, fmt.Errorf("%w: unknown publisher %q", ErrInvalidAct, publisher)
	}

	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		return FetchCommand{}, fmt.Errorf("%w: year must be numeric", ErrInvalidAct)
	}

	pos, err := strconv.Atoi(r.PathValue("pos"))
	if err != nil {
		return FetchCommand{}, fmt.Errorf("%w: pos must be numeric", ErrInvalidAct)
	}

	return FetchCommand{Publisher: publisher, Year: year, Pos: pos}, nil
}
