// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/commonshub/internal/app/features/errors"
	"github.com/dalemusser/commonshub/internal/app/system/paging"
	"github.com/dalemusser/commonshub/internal/app/system/timeouts"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// listResponse is the paged listing envelope. Search results come back
// in one page with no cursors.
type listResponse struct {
	Results    []models.Group `json:"results"`
	HasPrev    bool           `json:"has_prev"`
	HasNext    bool           `json:"has_next"`
	PrevCursor string         `json:"prev_cursor,omitempty"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// ServeList handles GET /groups. With ?search= it returns the visible
// groups whose aliases contain the query as a substring (so renamed and
// merged-away names still match); without it, one keyset page of the
// visible groups, walked with ?after= / ?before= cursors.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		groups, err := h.Svc.Groups().Search(ctx, search)
		if err != nil {
			uierrors.WriteServerError(w, h.Log, "searching groups failed", err)
			return
		}
		uierrors.WriteJSON(w, http.StatusOK, listResponse{Results: groups})
		return
	}

	before := r.URL.Query().Get("before")
	after := r.URL.Query().Get("after")

	groups, page, err := h.Svc.Groups().ListVisiblePage(ctx, before, after)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "listing groups failed", err)
		return
	}

	resp := listResponse{
		Results: groups,
		HasPrev: page.HasPrev,
		HasNext: page.HasNext,
	}
	if len(groups) > 0 {
		resp.PrevCursor, resp.NextCursor = paging.BuildCursors(groups,
			func(g models.Group) string { return g.NameCI },
			func(g models.Group) primitive.ObjectID { return g.ID })
	}

	uierrors.WriteJSON(w, http.StatusOK, resp)
}

// ServeFunctionalAreas handles GET /groups/functional_areas. The set is
// small and curated, so it is not paged.
func (h *Handler) ServeFunctionalAreas(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := h.Svc.Groups().FunctionalAreas(ctx)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "listing functional areas failed", err)
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, groups)
}
