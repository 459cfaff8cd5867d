// internal/app/features/groups/save.go
package groups

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/commonshub/internal/app/features/errors"
	"github.com/dalemusser/commonshub/internal/app/system/timeouts"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createGroupRequest struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	NewMemberCriteria   string `json:"new_member_criteria"`
	IRCChannel          string `json:"irc_channel"`
	Website             string `json:"website"`
	Wiki                string `json:"wiki"`
	CuratorID           string `json:"curator_id"`
	MembersCanLeave     *bool  `json:"members_can_leave"`
	AcceptingNewMembers string `json:"accepting_new_members"`
	FunctionalArea      bool   `json:"functional_area"`
}

// HandleCreate handles POST /groups. The slug is assigned from the name
// on this first save and never changes afterwards.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decode(r, &req); err != nil {
		uierrors.WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		uierrors.WriteBadRequest(w, "name is required")
		return
	}
	switch req.AcceptingNewMembers {
	case "", models.AcceptingYes, models.AcceptingByRequest, models.AcceptingNo:
	default:
		uierrors.WriteBadRequest(w, "unknown join policy")
		return
	}

	g := models.Group{
		Name:                req.Name,
		Description:         req.Description,
		NewMemberCriteria:   req.NewMemberCriteria,
		IRCChannel:          req.IRCChannel,
		Website:             req.Website,
		Wiki:                req.Wiki,
		AcceptingNewMembers: req.AcceptingNewMembers,
		FunctionalArea:      req.FunctionalArea,
		MembersCanLeave:     true,
		Visible:             true,
	}
	if req.MembersCanLeave != nil {
		g.MembersCanLeave = *req.MembersCanLeave
	}
	if req.CuratorID != "" {
		id, ok := parseID(req.CuratorID)
		if !ok {
			uierrors.WriteBadRequest(w, "invalid curator_id")
			return
		}
		g.CuratorID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Svc.Groups().Create(ctx, g)
	if err != nil {
		uierrors.WriteValidation(w, h.Log, err)
		return
	}

	uierrors.WriteJSON(w, http.StatusCreated, created)
}

type updateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleUpdate handles PUT /groups/{url}. Renaming records a fresh alias
// for the new name; the slug stays what it was.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateGroupRequest
	if err := decode(r, &req); err != nil {
		uierrors.WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		uierrors.WriteBadRequest(w, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.resolveGroup(ctx, w, r)
	if !ok {
		return
	}

	if err := h.Svc.Groups().UpdateInfo(ctx, g.ID, req.Name, req.Description); err != nil {
		uierrors.WriteValidation(w, h.Log, err)
		return
	}

	updated, err := h.Svc.Groups().GetByID(ctx, g.ID)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "reloading group failed", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, updated)
}

type setCuratorRequest struct {
	CuratorID string `json:"curator_id"`
}

// HandleSetCurator handles PUT /groups/{url}/curator. An empty
// curator_id clears the curator.
func (h *Handler) HandleSetCurator(w http.ResponseWriter, r *http.Request) {
	var req setCuratorRequest
	if err := decode(r, &req); err != nil {
		uierrors.WriteBadRequest(w, "invalid request body")
		return
	}

	var curatorID *primitive.ObjectID
	if req.CuratorID != "" {
		id, ok := parseID(req.CuratorID)
		if !ok {
			uierrors.WriteBadRequest(w, "invalid curator_id")
			return
		}
		curatorID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.resolveGroup(ctx, w, r)
	if !ok {
		return
	}

	if err := h.Svc.Groups().SetCurator(ctx, g.ID, curatorID); err != nil {
		uierrors.WriteServerError(w, h.Log, "setting curator failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
