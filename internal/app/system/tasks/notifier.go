// internal/app/system/tasks/notifier.go
package tasks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// LogNotifier is the default Notifier backend: it records transition
// events through the dispatcher so the external mail pipeline (which
// owns templates and delivery) can be attached without touching the
// core. Until that pipeline is wired, events land in the structured log.
type LogNotifier struct {
	d   *Dispatcher
	log *zap.Logger
}

// NewLogNotifier creates a LogNotifier over the given dispatcher.
func NewLogNotifier(d *Dispatcher, logger *zap.Logger) *LogNotifier {
	return &LogNotifier{d: d, log: logger}
}

func (n *LogNotifier) MembershipChanged(groupID, userID primitive.ObjectID, oldStatus, newStatus string) {
	n.d.Go("membership-changed", func(ctx context.Context) error {
		n.log.Info("membership changed",
			zap.String("group_id", groupID.Hex()),
			zap.String("user_id", userID.Hex()),
			zap.String("old_status", oldStatus),
			zap.String("new_status", newStatus))
		return nil
	})
}

func (n *LogNotifier) MemberRemoved(groupID, userID primitive.ObjectID, oldStatus string) {
	n.d.Go("member-removed", func(ctx context.Context) error {
		n.log.Info("member removed",
			zap.String("group_id", groupID.Hex()),
			zap.String("user_id", userID.Hex()),
			zap.String("old_status", oldStatus))
		return nil
	})
}

// PendingRequestsReminder is fired by the reminder worker when a curated
// by-request group accumulates new unreviewed join requests.
func (n *LogNotifier) PendingRequestsReminder(groupID, curatorID primitive.ObjectID, pending int64) {
	n.d.Go("pending-requests-reminder", func(ctx context.Context) error {
		n.log.Info("pending requests reminder",
			zap.String("group_id", groupID.Hex()),
			zap.String("curator_id", curatorID.Hex()),
			zap.Int64("pending", pending))
		return nil
	})
}
