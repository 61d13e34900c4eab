// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// MountRoutes registers the email/password auth endpoints.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.ServeRegister)
		r.Post("/login", h.ServeLogin)
		r.Post("/logout", h.ServeLogout)
		r.Get("/me", h.ServeMe)
	})
}
