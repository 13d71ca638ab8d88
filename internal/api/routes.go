package api

import (
	"net/http"

	"lexview/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Search.Handler().Routes(),
		domain.Library.Handler().Routes(),
	)
}
