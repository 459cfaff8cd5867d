// internal/app/system/tasks/tasks.go

// Package tasks holds the outbound side-effect contracts the membership
// core fires on state transitions, and a fire-and-forget dispatcher that
// hands them to their backends.
//
// The core never waits on a trigger and never observes its failure;
// delivery guarantees are the task backend's concern. Tests substitute
// recording fakes for the two interfaces.
package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// StatusAbsent is the "no membership row" end of a transition, used for
// denial (pending -> absent) notifications.
const StatusAbsent = ""

// Notifier receives membership transition events for the notification
// pipeline (curator and member emails live behind it).
type Notifier interface {
	// MembershipChanged fires on promotion (pending -> member) and on
	// denial (pending -> absent, newStatus == StatusAbsent).
	MembershipChanged(groupID, userID primitive.ObjectID, oldStatus, newStatus string)

	// MemberRemoved fires when a full member is removed with
	// notifications enabled.
	MemberRemoved(groupID, userID primitive.ObjectID, oldStatus string)
}

// Syncer mirrors a profile to the external marketing list. Fired for any
// membership change on a functional-area group, regardless of
// notification settings.
type Syncer interface {
	SyncProfile(userID primitive.ObjectID)
}

// Dispatcher runs trigger work on its own goroutine with a bounded
// deadline. Each job gets an ID so its log lines can be correlated.
type Dispatcher struct {
	log     *zap.Logger
	timeout time.Duration
}

// NewDispatcher creates a Dispatcher. timeout bounds each job's run;
// zero means 30 seconds.
func NewDispatcher(logger *zap.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{log: logger, timeout: timeout}
}

// Go dispatches fn asynchronously. Errors are logged and swallowed; the
// caller has already moved on.
func (d *Dispatcher) Go(name string, fn func(ctx context.Context) error) {
	jobID := uuid.NewString()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			d.log.Error("task failed",
				zap.String("task", name),
				zap.String("job_id", jobID),
				zap.Error(err))
			return
		}
		d.log.Debug("task done",
			zap.String("task", name),
			zap.String("job_id", jobID))
	}()
}
