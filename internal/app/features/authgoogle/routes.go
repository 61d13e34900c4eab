// internal/app/features/authgoogle/routes.go
package authgoogle

import "github.com/go-chi/chi/v5"

// MountRoutes registers the Google OAuth endpoints.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/auth/google", h.ServeLogin)
	r.Get("/auth/google/callback", h.ServeCallback)
}
