package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/countries", handler.ListCountries)
}

func registerPlanRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/plan", handler.Plan)
	// Unversioned path kept for links shared before /v1.
	mux.HandleFunc("GET /plan", handler.Plan)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/auth", handler.BeginAuth)
	mux.HandleFunc("GET /v1/auth/callback", handler.AuthCallback)
}
