// internal/app/features/skills/merge.go
package skills

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/commonshub/internal/app/features/errors"
	"github.com/dalemusser/commonshub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mergeRequest struct {
	TargetID  string   `json:"target_id"`
	SourceIDs []string `json:"source_ids"`
}

// HandleMerge handles POST /skills/merge: source members move to the
// target, source aliases repoint, sources are deleted.
func (h *Handler) HandleMerge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := decode(r, &req); err != nil {
		uierrors.WriteBadRequest(w, "invalid request body")
		return
	}

	targetID, ok := parseID(req.TargetID)
	if !ok {
		uierrors.WriteBadRequest(w, "invalid target_id")
		return
	}
	if len(req.SourceIDs) == 0 {
		uierrors.WriteBadRequest(w, "source_ids is required")
		return
	}
	sourceIDs := make([]primitive.ObjectID, 0, len(req.SourceIDs))
	for _, raw := range req.SourceIDs {
		id, ok := parseID(raw)
		if !ok {
			uierrors.WriteBadRequest(w, "invalid source id")
			return
		}
		if id == targetID {
			uierrors.WriteBadRequest(w, "a skill cannot be merged into itself")
			return
		}
		sourceIDs = append(sourceIDs, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Svc.MergeSkills(ctx, targetID, sourceIDs); err != nil {
		uierrors.WriteServerError(w, h.Log, "merging skills failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
