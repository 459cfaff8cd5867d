// internal/app/features/profiles/routes.go
package profiles

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeView)
	r.Put("/{id}/vouch", h.HandleVouch)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
