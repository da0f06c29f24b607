// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// StoryNest API. It organizes routes into public, authenticated, and
// admin groups with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"storynest/internal/handlers"
	"storynest/internal/middleware"
	"storynest/internal/session"
)

// Generation endpoints call a paid AI provider, so they get their own
// tighter per-client limit.
const (
	generateLimit  = 10
	generateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, auth *handlers.Auth, templates *handlers.Templates,
	stories *handlers.Stories, orders *handlers.Orders, admin *handlers.Admin) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check.
	r.Get("/health", healthHandler)

	generateLimiter := middleware.NewRateLimiter(generateLimit, generateWindow)

	r.Route("/api", func(r chi.Router) {
		// Auth.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/user", auth.Me)
				// Admin TOTP enrollment happens before Require2FA can pass.
				r.Post("/2fa/setup", auth.TwoFASetup)
				r.Post("/2fa/verify", auth.TwoFAVerify)
			})
		})

		// Template catalog is public browsing.
		r.Route("/story-templates", func(r chi.Router) {
			r.Get("/", templates.List)
			r.Get("/{id}", templates.Get)
		})

		// Stories.
		r.Route("/stories", func(r chi.Router) {
			r.Get("/published", stories.Catalog)
			r.Get("/{id}", stories.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/user", stories.ListMine)
				r.Get("/{id}/photos", stories.Photos)
				r.Post("/from-template", stories.CreateFromTemplate)
				r.Put("/{id}", stories.Update)
				r.Delete("/{id}", stories.Delete)

				r.Group(func(r chi.Router) {
					r.Use(generateLimiter.Middleware)
					r.Post("/custom", stories.CreateCustom)
					r.Post("/custom/variations", stories.Variations)
				})
			})
		})

		// Orders.
		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", orders.Create)
			r.Get("/user", orders.ListMine)
			r.Get("/{id}", orders.Get)
		})

		// Admin area. Admins must have completed the TOTP challenge.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.RequireAdmin)

			r.Get("/stats", admin.Stats)
			r.Get("/users", admin.ListUsers)
			r.Get("/stories", admin.ListStories)

			r.Route("/story-templates", func(r chi.Router) {
				r.Post("/", admin.CreateTemplate)
				r.Put("/{id}", admin.UpdateTemplate)
				r.Delete("/{id}", admin.DeleteTemplate)
			})

			r.Put("/orders/{id}/status", admin.UpdateOrderStatus)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
