// internal/app/features/posts/routes.go
package posts

import (
	"github.com/go-chi/chi/v5"

	"github.com/verdantapp/verdant/internal/app/system/auth"
)

// Routes mounts the post routes under the path where this router is
// mounted (typically "/api/v1/post" from bootstrap). Share endpoints
// are public so links work for recipients without accounts; everything
// else requires a signed-in user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/share/{id}", h.ServeShare)
	r.Get("/share/view/{id}", h.ServeShareView)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/create", h.ServeCreate)
		pr.Put("/update/{id}", h.ServeUpdate)
		pr.Delete("/delete/{id}", h.ServeDelete)
		pr.Get("/find/all", h.ServeList)
		pr.Put("/like/{id}", h.ServeLike)
		pr.Post("/save/{id}", h.ServeSave)
		pr.Put("/comment/{id}", h.ServeComment)
		pr.Delete("/comment/delete/{id}", h.ServeDeleteComment)
		pr.Get("/comment/all/{id}", h.ServeListComments)
		pr.Get("/{id}", h.ServeGet)
	})

	return r
}
