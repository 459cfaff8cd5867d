// internal/app/features/groups/view.go
package groups

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/commonshub/internal/app/features/errors"
	"github.com/dalemusser/commonshub/internal/app/system/timeouts"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// groupView is the detail payload: the group plus its member counts.
type groupView struct {
	models.Group
	MemberCount  int64 `json:"member_count"`
	PendingCount int64 `json:"pending_count"`
}

// resolveGroup loads the group addressed by the {url} route parameter.
// The slug goes through the alias registry, so old names of renamed or
// merged groups still resolve.
func (h *Handler) resolveGroup(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Group, bool) {
	g, err := h.Svc.Groups().GetByURL(ctx, chi.URLParam(r, "url"))
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.WriteNotFound(w)
		return models.Group{}, false
	}
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "loading group failed", err)
		return models.Group{}, false
	}
	return g, true
}

// ServeView handles GET /groups/{url}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.resolveGroup(ctx, w, r)
	if !ok {
		return
	}

	members, err := h.Svc.Memberships().CountByGroup(ctx, g.ID, models.StatusMember)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "counting members failed", err)
		return
	}
	pending, err := h.Svc.Memberships().CountByGroup(ctx, g.ID, models.StatusPending)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "counting pending requests failed", err)
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, groupView{
		Group:        g,
		MemberCount:  members,
		PendingCount: pending,
	})
}

// ServeMembers handles GET /groups/{url}/members. ?status=member or
// ?status=pending narrows the ledger rows returned.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.resolveGroup(ctx, w, r)
	if !ok {
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !models.ValidStatus(status) {
		uierrors.WriteBadRequest(w, "unknown membership status")
		return
	}

	rows, err := h.Svc.Memberships().ListByGroup(ctx, g.ID, status)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "listing members failed", err)
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, rows)
}
