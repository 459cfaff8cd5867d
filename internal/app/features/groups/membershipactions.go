// internal/app/features/groups/membershipactions.go
package groups

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/commonshub/internal/app/features/errors"
	"github.com/dalemusser/commonshub/internal/app/policy/grouppolicy"
	"github.com/dalemusser/commonshub/internal/app/system/timeouts"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type memberRequest struct {
	UserID string `json:"user_id"`
}

// loadProfile resolves the user_id in a membership action body.
func (h *Handler) loadProfile(ctx context.Context, w http.ResponseWriter, rawID string) (models.Profile, bool) {
	id, ok := parseID(rawID)
	if !ok {
		uierrors.WriteBadRequest(w, "invalid user_id")
		return models.Profile{}, false
	}
	p, err := h.Svc.Profiles().GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.WriteNotFound(w)
		return models.Profile{}, false
	}
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "loading profile failed", err)
		return models.Profile{}, false
	}
	return p, true
}

// HandleJoin handles POST /groups/{url}/join. Open groups admit the
// profile directly; by-request groups queue a pending row for the
// curator. Ineligible profiles (unvouched, closed group, already in) get
// a 403.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decode(r, &req); err != nil {
		uierrors.WriteBadRequest(w, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.resolveGroup(ctx, w, r)
	if !ok {
		return
	}
	p, ok := h.loadProfile(ctx, w, req.UserID)
	if !ok {
		return
	}

	allowed, err := grouppolicy.CanJoin(ctx, h.Svc, g, p)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "join eligibility check failed", err)
		return
	}
	if !allowed {
		uierrors.WriteForbidden(w, "cannot join this group")
		return
	}

	status := grouppolicy.JoinStatus(g)
	if err := h.Svc.AddMember(ctx, g, p.ID, status); err != nil {
		uierrors.WriteServerError(w, h.Log, "joining group failed", err)
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]string{"status": status})
}

// HandleLeave handles POST /groups/{url}/leave. Leaving is silent: no
// notification fires, and a pending row is simply withdrawn.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decode(r, &req); err != nil {
		uierrors.WriteBadRequest(w, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.resolveGroup(ctx, w, r)
	if !ok {
		return
	}
	p, ok := h.loadProfile(ctx, w, req.UserID)
	if !ok {
		return
	}

	allowed, err := grouppolicy.CanLeave(ctx, h.Svc, g, p)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "leave eligibility check failed", err)
		return
	}
	if !allowed {
		uierrors.WriteForbidden(w, "cannot leave this group")
		return
	}

	if err := h.Svc.RemoveMember(ctx, g, p.ID, false); err != nil {
		uierrors.WriteServerError(w, h.Log, "leaving group failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleConfirm handles POST /groups/{url}/confirm: the curator approves
// a pending request, promoting it to full membership.
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decode(r, &req); err != nil {
		uierrors.WriteBadRequest(w, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.resolveGroup(ctx, w, r)
	if !ok {
		return
	}
	p, ok := h.loadProfile(ctx, w, req.UserID)
	if !ok {
		return
	}

	pending, err := h.Svc.HasPendingMember(ctx, g.ID, p.ID)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "checking pending request failed", err)
		return
	}
	if !pending {
		uierrors.WriteBadRequest(w, "no pending request for this profile")
		return
	}

	if err := h.Svc.AddMember(ctx, g, p.ID, models.StatusMember); err != nil {
		uierrors.WriteServerError(w, h.Log, "confirming member failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove handles POST /groups/{url}/remove: the curator removes a
// member or denies a pending request. Notifications fire, so the
// affected profile learns about it.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decode(r, &req); err != nil {
		uierrors.WriteBadRequest(w, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.resolveGroup(ctx, w, r)
	if !ok {
		return
	}
	p, ok := h.loadProfile(ctx, w, req.UserID)
	if !ok {
		return
	}

	if err := h.Svc.RemoveMember(ctx, g, p.ID, true); err != nil {
		uierrors.WriteServerError(w, h.Log, "removing member failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
