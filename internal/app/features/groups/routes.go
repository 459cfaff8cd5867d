// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// LIST + SEARCH
	r.Get("/", h.ServeList)
	r.Get("/functional_areas", h.ServeFunctionalAreas)

	// CREATE + MERGE
	r.Post("/", h.HandleCreate)
	r.Post("/merge", h.HandleMerge)

	// DETAIL (slugs resolve through the alias registry)
	r.Get("/{url}", h.ServeView)
	r.Put("/{url}", h.HandleUpdate)
	r.Get("/{url}/members", h.ServeMembers)
	r.Put("/{url}/curator", h.HandleSetCurator)

	// MEMBERSHIP ACTIONS
	r.Post("/{url}/join", h.HandleJoin)
	r.Post("/{url}/leave", h.HandleLeave)
	r.Post("/{url}/confirm", h.HandleConfirm)
	r.Post("/{url}/remove", h.HandleRemove)

	return r
}
