package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"github.com/shoppinh/jp-order-BE/internal/http/middleware"
	"github.com/shoppinh/jp-order-BE/internal/http/response"
)

// RouterDeps collects everything the router mounts.
type RouterDeps struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Products  *ProductHandler
	Orders    *OrderHandler
	Addresses *AddressHandler
	Settings  *SettingHandler
	Files     *FileHandler

	Validator      middleware.TokenValidator
	LoginLimiter   *middleware.RedisFixedWindowLimiter
	AllowedOrigins []string
}

// NewRouter assembles the full API surface under /api.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	authed := middleware.Authenticate(deps.Validator)
	adminOnly := middleware.RequireRoles(domain.RoleSuperUser)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.LoginRateLimit(deps.LoginLimiter)).Post("/login", deps.Auth.Login)
			r.Post("/refresh-token", deps.Auth.Refresh)
			r.Post("/logout", deps.Auth.Logout)
			r.With(authed).Get("/me", deps.Auth.Me)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Post("/register", deps.Users.Register)
			r.Post("/list", deps.Users.List)
			r.Get("/{id}", deps.Users.Get)
			r.Put("/{id}", deps.Users.Update)
			r.Delete("/{id}", deps.Users.Delete)
		})

		r.Route("/role", func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Get("/", deps.Users.ListRoles)
			r.Post("/", deps.Users.UpsertRoles)
		})

		r.Route("/product", func(r chi.Router) {
			r.Use(authed)
			r.Post("/list", deps.Products.List)
			r.Get("/{id}", deps.Products.Get)
			r.With(adminOnly).Post("/", deps.Products.Create)
			r.With(adminOnly).Put("/{id}", deps.Products.Update)
			r.With(adminOnly).Delete("/{id}", deps.Products.Delete)
		})

		r.Route("/category", func(r chi.Router) {
			r.Use(authed)
			r.Post("/list", deps.Products.ListCategories)
			r.Get("/{id}", deps.Products.GetCategory)
			r.With(adminOnly).Post("/", deps.Products.CreateCategory)
			r.With(adminOnly).Put("/{id}", deps.Products.UpdateCategory)
			r.With(adminOnly).Delete("/{id}", deps.Products.DeleteCategory)
		})

		r.Route("/order", func(r chi.Router) {
			r.Use(authed)
			r.Post("/", deps.Orders.Create)
			r.Post("/list", deps.Orders.List)
			r.Get("/{id}", deps.Orders.Get)
			r.With(adminOnly).Patch("/{id}/status", deps.Orders.UpdateStatus)
		})

		r.Route("/address", func(r chi.Router) {
			r.Use(authed)
			r.Post("/", deps.Addresses.Create)
			r.Post("/list", deps.Addresses.List)
			r.Get("/{id}", deps.Addresses.Get)
			r.Put("/{id}", deps.Addresses.Update)
			r.Delete("/{id}", deps.Addresses.Delete)
		})

		r.Route("/setting", func(r chi.Router) {
			r.Use(authed)
			r.Get("/", deps.Settings.Get)
			r.With(adminOnly).Put("/", deps.Settings.Update)
		})

		r.Route("/file", func(r chi.Router) {
			r.Use(authed)
			r.Post("/upload", deps.Files.Upload)
			r.Post("/claim", deps.Files.Claim)
			r.Get("/{id}/url", deps.Files.URL)
		})
	})

	return r
}
