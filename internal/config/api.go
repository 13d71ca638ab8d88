package config

import (
	"fmt"
	"os"
	"strconv"

	"lexview/pkg/middleware"
	"lexview/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "LEXVIEW_CORS_ENABLED",
	Origins:          "LEXVIEW_CORS_ORIGINS",
	AllowedMethods:   "LEXVIEW_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "LEXVIEW_CORS_ALLOWED_HEADERS",
	AllowCredentials: "LEXVIEW_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "LEXVIEW_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "LEXVIEW_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "LEXVIEW_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, pagination, and search settings.
type APIConfig struct {
	BasePath     string                `toml:"base_path"`
	FetchWorkers int                   `toml:"fetch_workers"`
	CORS         middleware.CORSConfig `toml:"cors"`
	Pagination   pagination.Config     `toml:"pagination"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if c.FetchWorkers < 1 {
		return fmt.Errorf("fetch_workers must be positive: %d", c.FetchWorkers)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.FetchWorkers != 0 {
		c.FetchWorkers = overlay.FetchWorkers
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.FetchWorkers == 0 {
		c.FetchWorkers = 1
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("LEXVIEW_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("LEXVIEW_API_FETCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.FetchWorkers = n
		}
	}
}
