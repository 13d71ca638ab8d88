package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// ErrDocumentNotFound indicates the registry holds no PDF text for the act.
var ErrDocumentNotFound = errors.New("act document not found in registry")

type listResponse struct {
	Items      []Act `json:"items"`
	Count      int   `json:"count"`
	TotalCount int   `json:"totalCount"`
}

type client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	logger    *slog.Logger
}

// New creates a registry client from the given configuration.
// The base URL is fixed at construction; there is no mutable global.
func New(cfg *Config, logger *slog.Logger) System {
	return &client{
		http:      &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		logger:    logger.With("system", "registry"),
	}
}

func (c *client) Acts(ctx context.Context, publisher string, year int) ([]Act, error) {
	url := fmt.Sprintf("%s/%s/%d", c.baseURL, publisher, year)

	resp, err := c.get(ctx, url, "application/json")
	if err != nil {
		return nil, fmt.Errorf("fetch acts %s/%d: %w", publisher, year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch acts %s/%d: registry responded %d", publisher, year, resp.StatusCode)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode acts %s/%d: %w", publisher, year, err)
	}

	c.logger.Debug("acts fetched", "publisher", publisher, "year", year, "count", len(list.Items))
	return list.Items, nil
}

func (c *client) Document(ctx context.Context, publisher string, year, pos int) (*DocumentResult, error) {
	url := fmt.Sprintf("%s/%s/%d/%d/text.pdf", c.baseURL, publisher, year, pos)

	resp, err := c.get(ctx, url, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("fetch document %s/%d/%d: %w", publisher, year, pos, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return &DocumentResult{
			Body:          resp.Body,
			ContentLength: resp.ContentLength,
		}, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrDocumentNotFound
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("fetch document %s/%d/%d: registry responded %d", publisher, year, pos, resp.StatusCode)
	}
}

func (c *client) get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", accept)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	return c.http.Do(req)
}
