package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/redeinformatica/vitrine/internal/api/handler"
	"github.com/redeinformatica/vitrine/internal/api/middleware"
)

// CatalogService is everything the catalog endpoints need; *catalog.Service
// implements it.
type CatalogService interface {
	handler.CategoryService
	handler.ItemService
	handler.BannerService
}

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger      handler.Pinger
	StoragePinger handler.Pinger
	Version       string
	OpenAPISpec   []byte

	Authenticator middleware.Authenticator
	Accounts      handler.AccountService
	Catalog       CatalogService

	// Metrics instruments every request when set.
	Metrics *middleware.Metrics
	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler)
	}

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.StoragePinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if len(deps.OpenAPISpec) > 0 {
		openapiHandler, err := handler.NewOpenAPIHandler(deps.OpenAPISpec, deps.Version)
		if err != nil {
			return nil, fmt.Errorf("loading OpenAPI document: %w", err)
		}
		r.Get("/openapi.json", openapiHandler.ServeHTTP)
	}

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	if deps.Authenticator == nil {
		return r, nil
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(deps.Authenticator))

		if deps.Accounts != nil {
			accounts := handler.NewAccountHandler(deps.Accounts)
			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", accounts.Register)
				r.Post("/sessions", accounts.SignIn)
				r.With(middleware.RequireIdentity()).Delete("/sessions/current", accounts.SignOut)
				r.Get("/me", accounts.Me)
			})
		}

		if deps.Catalog == nil {
			return
		}

		categories := handler.NewCategoryHandler(deps.Catalog)
		items := handler.NewItemHandler(deps.Catalog)
		banners := handler.NewBannerHandler(deps.Catalog)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Post("/", categories.Create)
			r.Post("/upload-url", categories.UploadURL)
			r.Put("/{id}", categories.Update)
			r.Delete("/{id}", categories.Delete)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", items.ListMine)
			r.Post("/", items.Create)
			r.Post("/upload-url", items.UploadURL)
			r.Put("/{id}", items.Update)
			r.Delete("/{id}", items.Delete)
		})

		r.Route("/banner", func(r chi.Router) {
			r.Get("/", banners.Get)
			r.Put("/", banners.Put)
			r.Delete("/", banners.Delete)
			r.Post("/upload-url", banners.UploadURL)
		})

		r.Route("/public", func(r chi.Router) {
			r.Get("/categories", categories.ListPublic)
			r.Get("/categories/{id}/items", items.ListByCategory)
			r.Get("/items/search", items.Search)
			r.Get("/banner", banners.GetPublic)
		})
	})

	return r, nil
}
