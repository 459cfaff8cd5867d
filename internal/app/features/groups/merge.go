// internal/app/features/groups/merge.go
package groups

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

// HandleMerge handles POST /groups/merge. Source members are replayed
// into the target (member beats pending), source aliases repoint to the
// target, and the sources are deleted.
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
			uierrors.WriteBadRequest(w, "a group cannot be merged into itself")
			return
		}
		sourceIDs = append(sourceIDs, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Svc.MergeGroups(ctx, targetID, sourceIDs); err != nil {
		uierrors.WriteServerError(w, h.Log, "merging groups failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
