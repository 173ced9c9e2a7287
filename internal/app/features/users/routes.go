// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/verdantapp/verdant/internal/app/system/auth"
)

// Routes mounts the user routes under the path where this router is
// mounted (typically "/api/v1/user" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.ServeSignup)
	r.Post("/login", h.ServeLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/me", h.ServeMe)
		pr.Post("/connect/{id}", h.ServeConnect)
		pr.Put("/connect/approve/{id}", h.ServeApproveConnect)
		pr.Put("/feed/hide/{id}", h.ServeFeedHide)
	})

	return r
}
