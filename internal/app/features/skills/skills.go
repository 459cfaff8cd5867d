// internal/app/features/skills/skills.go
package skills

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/commonshub/internal/app/features/errors"
	"github.com/dalemusser/commonshub/internal/app/policy/grouppolicy"
	"github.com/dalemusser/commonshub/internal/app/system/timeouts"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeSearch handles GET /skills?search=. Skills have no visibility
// flag, so every alias match comes back.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	if search == "" {
		uierrors.WriteBadRequest(w, "search is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	skills, err := h.Svc.Skills().Search(ctx, search)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "searching skills failed", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, skills)
}

type createSkillRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate handles POST /skills.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createSkillRequest
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

	created, err := h.Svc.Skills().Create(ctx, models.Skill{
		Name: req.Name,
	})
	if err != nil {
		uierrors.WriteValidation(w, h.Log, err)
		return
	}
	uierrors.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) resolveSkill(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Skill, bool) {
	sk, err := h.Svc.Skills().GetByURL(ctx, chi.URLParam(r, "url"))
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.WriteNotFound(w)
		return models.Skill{}, false
	}
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "loading skill failed", err)
		return models.Skill{}, false
	}
	return sk, true
}

// ServeView handles GET /skills/{url}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sk, ok := h.resolveSkill(ctx, w, r)
	if !ok {
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, sk)
}

// ServeMembers handles GET /skills/{url}/members.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sk, ok := h.resolveSkill(ctx, w, r)
	if !ok {
		return
	}

	rows, err := h.Svc.SkillMembers().ListBySkill(ctx, sk.ID)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "listing skill members failed", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, rows)
}

type memberRequest struct {
	UserID string `json:"user_id"`
}

// HandleJoin handles POST /skills/{url}/join. Skills are binary: no
// pending queue, no curator, just vouched-and-not-already-tagged.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decode(r, &req); err != nil {
		uierrors.WriteBadRequest(w, "invalid request body")
		return
	}
	userID, ok := parseID(req.UserID)
	if !ok {
		uierrors.WriteBadRequest(w, "invalid user_id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sk, ok := h.resolveSkill(ctx, w, r)
	if !ok {
		return
	}

	p, err := h.Svc.Profiles().GetByID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.WriteNotFound(w)
		return
	}
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "loading profile failed", err)
		return
	}

	allowed, err := grouppolicy.CanJoinSkill(ctx, h.Svc, sk, p)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "join eligibility check failed", err)
		return
	}
	if !allowed {
		uierrors.WriteForbidden(w, "cannot join this skill")
		return
	}

	if err := h.Svc.AddSkill(ctx, sk.ID, p.ID); err != nil {
		uierrors.WriteServerError(w, h.Log, "joining skill failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLeave handles POST /skills/{url}/leave.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decode(r, &req); err != nil {
		uierrors.WriteBadRequest(w, "invalid request body")
		return
	}
	userID, ok := parseID(req.UserID)
	if !ok {
		uierrors.WriteBadRequest(w, "invalid user_id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sk, ok := h.resolveSkill(ctx, w, r)
	if !ok {
		return
	}

	p, err := h.Svc.Profiles().GetByID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.WriteNotFound(w)
		return
	}
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "loading profile failed", err)
		return
	}

	allowed, err := grouppolicy.CanLeaveSkill(ctx, h.Svc, sk, p)
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "leave eligibility check failed", err)
		return
	}
	if !allowed {
		uierrors.WriteForbidden(w, "cannot leave this skill")
		return
	}

	if err := h.Svc.RemoveSkill(ctx, sk.ID, userID); err != nil {
		uierrors.WriteServerError(w, h.Log, "leaving skill failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
