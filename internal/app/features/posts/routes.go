// internal/app/features/posts/routes.go
package posts

import "github.com/go-chi/chi/v5"

// MountRoutes registers the post endpoints. Reads are public; writes
// rely on the interaction service's own authentication guard, so no
// middleware gate is needed here.
func MountRoutes(r chi.Router, h *Handler) {
	r.Route("/api/posts", func(r chi.Router) {
		r.Post("/", h.ServeCreate)
		r.Get("/saved", h.ServeSaved)
		r.Get("/{postID}", h.ServeGet)
		r.Post("/{postID}/like", h.ServeLikeToggle)
		r.Post("/{postID}/save", h.ServeSaveToggle)
	})
}
