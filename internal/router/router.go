// Package router sets up all HTTP routes and middleware chains for the
// newsdesk API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter guards only the public group; the
// admin group is gated by the bearer token instead.
func New(public *handlers.Public, admin *handlers.Admin, limiter *middleware.RateLimiter, adminTokenHash string) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check, outside both groups.
	r.Get("/health", healthHandler)

	// Public routes, rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Get("/api/posts", public.ListPosts)
		r.Get("/api/posts/{id}", public.GetPost)
		r.Get("/api/categories", public.Categories)
		r.Get("/api/menu", public.Menu)
		r.Get("/api/pages/{slug}", public.GetPage)
		r.Get("/api/tags", public.Tags)
		r.Get("/api/settings", public.Settings)
	})

	// Admin routes, bearer token required.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireToken(adminTokenHash))

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", admin.ListPosts)
			r.Post("/", admin.CreatePost)
			r.Put("/{id}", admin.UpdatePost)
			r.Delete("/{id}", admin.DeletePost)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", admin.ListCategories)
			r.Post("/", admin.CreateCategory)
			r.Put("/{id}", admin.UpdateCategory)
			r.Delete("/{id}", admin.DeleteCategory)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", admin.ListTags)
			r.Post("/", admin.CreateTag)
			r.Put("/{id}", admin.UpdateTag)
			r.Delete("/{id}", admin.DeleteTag)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", admin.ListMenuItems)
			r.Post("/", admin.CreateMenuItem)
			r.Put("/{id}", admin.UpdateMenuItem)
			r.Delete("/{id}", admin.DeleteMenuItem)
		})

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", admin.ListPages)
			r.Post("/", admin.CreatePage)
			r.Put("/{id}", admin.UpdatePage)
			r.Delete("/{id}", admin.DeletePage)
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", admin.ListProfiles)
			r.Post("/", admin.CreateProfile)
			r.Put("/{id}", admin.UpdateProfile)
			r.Delete("/{id}", admin.DeleteProfile)
		})

		r.Get("/settings", admin.GetSettings)
		r.Put("/settings", admin.UpdateSettings)
		r.Get("/stats", admin.Stats)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
