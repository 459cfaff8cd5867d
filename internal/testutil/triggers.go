package testutil

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TriggerRecorder is a recording fake for both trigger contracts
// (tasks.Notifier and tasks.Syncer). It records synchronously so tests
// can assert immediately after the call that fired the trigger.
type TriggerRecorder struct {
	mu sync.Mutex

	Changes  []MembershipChange
	Removals []MemberRemoval
	Syncs    []primitive.ObjectID
}

// MembershipChange is one recorded MembershipChanged call.
type MembershipChange struct {
	GroupID   primitive.ObjectID
	UserID    primitive.ObjectID
	OldStatus string
	NewStatus string
}

// MemberRemoval is one recorded MemberRemoved call.
type MemberRemoval struct {
	GroupID   primitive.ObjectID
	UserID    primitive.ObjectID
	OldStatus string
}

// NewTriggerRecorder creates an empty recorder.
func NewTriggerRecorder() *TriggerRecorder {
	return &TriggerRecorder{}
}

func (r *TriggerRecorder) MembershipChanged(groupID, userID primitive.ObjectID, oldStatus, newStatus string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Changes = append(r.Changes, MembershipChange{
		GroupID:   groupID,
		UserID:    userID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	})
}

func (r *TriggerRecorder) MemberRemoved(groupID, userID primitive.ObjectID, oldStatus string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Removals = append(r.Removals, MemberRemoval{
		GroupID:   groupID,
		UserID:    userID,
		OldStatus: oldStatus,
	})
}

func (r *TriggerRecorder) SyncProfile(userID primitive.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Syncs = append(r.Syncs, userID)
}

// SyncCount returns how many times SyncProfile fired for userID.
func (r *TriggerRecorder) SyncCount(userID primitive.ObjectID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, id := range r.Syncs {
		if id == userID {
			n++
		}
	}
	return n
}
