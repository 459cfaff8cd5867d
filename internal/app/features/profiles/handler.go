// internal/app/features/profiles/handler.go
package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/commonshub/internal/app/features/errors"
	"github.com/dalemusser/commonshub/internal/app/membership"
	profilestore "github.com/dalemusser/commonshub/internal/app/store/profiles"
	"github.com/dalemusser/commonshub/internal/app/system/timeouts"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the profiles feature.
type Handler struct {
	Svc *membership.Service
	Log *zap.Logger
}

// NewHandler constructs a profiles Handler.
func NewHandler(svc *membership.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Svc: svc,
		Log: logger,
	}
}

type createProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Vouched  bool   `json:"vouched"`
}

// HandleCreate handles POST /profiles.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		uierrors.WriteBadRequest(w, "invalid request body")
		return
	}
	if req.FullName == "" || req.Email == "" {
		uierrors.WriteBadRequest(w, "full_name and email are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Svc.Profiles().Create(ctx, models.Profile{
		FullName: req.FullName,
		Email:    req.Email,
		Vouched:  req.Vouched,
	})
	if errors.Is(err, profilestore.ErrDuplicateEmail) {
		uierrors.WriteError(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		uierrors.WriteServerError(w, h.Log, "creating profile failed", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusCreated, created)
}

// resolveProfile loads the profile addressed by the {id} route parameter.
func (h *Handler) resolveProfile(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Profile, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.WriteBadRequest(w, "invalid profile id")
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

// ServeView handles GET /profiles/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.resolveProfile(ctx, w, r)
	if !ok {
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, p)
}

type vouchRequest struct {
	Vouched bool `json:"vouched"`
}

// HandleVouch handles PUT /profiles/{id}/vouch. Vouching is decided by
// an external trust system; this endpoint just records the result.
func (h *Handler) HandleVouch(w http.ResponseWriter, r *http.Request) {
	var req vouchRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		uierrors.WriteBadRequest(w, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.resolveProfile(ctx, w, r)
	if !ok {
		return
	}

	if err := h.Svc.Profiles().SetVouched(ctx, p.ID, req.Vouched); err != nil {
		uierrors.WriteServerError(w, h.Log, "updating vouch flag failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /profiles/{id}: the profile goes away with
// its membership rows, skill links, and curator back-references.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	p, ok := h.resolveProfile(ctx, w, r)
	if !ok {
		return
	}

	if err := h.Svc.DeleteProfile(ctx, p.ID); err != nil {
		uierrors.WriteServerError(w, h.Log, "deleting profile failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
