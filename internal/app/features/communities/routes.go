// internal/app/features/communities/routes.go
package communities

import "github.com/go-chi/chi/v5"

// MountRoutes registers the community endpoints.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/api/communities", func(r chi.Router) {
		r.Get("/", h.ServeList)
		r.Post("/", h.ServeCreate)
		r.Get("/{communityID}", h.ServeGet)
		r.Post("/{communityID}/membership", h.ServeMembershipToggle)
	})
}
