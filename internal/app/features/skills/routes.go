// internal/app/features/skills/routes.go
package skills

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeSearch)
	r.Post("/", h.HandleCreate)
	r.Post("/merge", h.HandleMerge)

	r.Get("/{url}", h.ServeView)
	r.Get("/{url}/members", h.ServeMembers)
	r.Post("/{url}/join", h.HandleJoin)
	r.Post("/{url}/leave", h.HandleLeave)

	return r
}
