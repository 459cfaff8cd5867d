// internal/app/features/groups/handler.go
package groups

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/commonshub/internal/app/membership"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature. The
// individual handlers (list, view, save, membership actions, merge) all
// go through the same membership service and logger.
type Handler struct {
	Svc *membership.Service
	Log *zap.Logger
}

// NewHandler constructs a groups Handler. It is typically called from
// the bootstrap BuildHandler function, where the membership service and
// logger are already initialized.
func NewHandler(svc *membership.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Svc: svc,
		Log: logger,
	}
}

// decode reads a JSON request body into dst.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// parseID parses a hex ObjectID from user input.
func parseID(s string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
