// internal/app/features/profile/routes.go
package profile

import "github.com/go-chi/chi/v5"

// MountRoutes registers the user profile endpoints. The fixed "me"
// path is registered before the wildcard so it never matches as an id.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Put("/me", h.ServeUpdateMe)
		r.Get("/{userID}", h.ServeGetUser)
	})
}
