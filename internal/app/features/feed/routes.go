// internal/app/features/feed/routes.go
package feed

import "github.com/go-chi/chi/v5"

// MountRoutes registers GET /api/feed on the supplied router. The feed
// is public: no session is required to read it.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/api/feed", h.ServeFeed)
}
