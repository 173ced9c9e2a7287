// internal/app/features/admins/routes.go
package admins

import (
	"github.com/go-chi/chi/v5"

	"github.com/verdantapp/verdant/internal/app/system/auth"
)

// Routes mounts the admin routes under the path where this router is
// mounted (typically "/api/v1/admin" from bootstrap). Login is public;
// everything else requires a signed-in caller, with role checks done
// per handler against a freshly loaded admin record.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.ServeLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/create", h.ServeCreate)
		pr.Put("/update/{id}", h.ServeUpdate)
		pr.Put("/password/{id}", h.ServePassword)
		pr.Delete("/delete/{id}", h.ServeDelete)
		pr.Get("/all", h.ServeListAdmins)
		pr.Get("/users", h.ServeListUsers)

		pr.Delete("/delete/squad/{id}", h.ServeDeleteSquad)
		pr.Delete("/delete/product/{id}", h.ServeDeleteProduct)
		pr.Put("/product/activate/{id}", h.ServeActivateProduct)
		pr.Put("/product/deactivate/{id}", h.ServeDeactivateProduct)
	})

	return r
}
