// internal/domain/models/groupmembership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership statuses. A missing row means "not a member, no pending
// request"; there is no explicit absent status in storage.
const (
	StatusMember  = "member"
	StatusPending = "pending"
)

// GroupMembership is the authoritative join between profiles and groups.
// Exactly one document per (group_id, user_id); status is a scalar
// ("member"|"pending") and only ever moves pending -> member.
type GroupMembership struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID    primitive.ObjectID `bson:"group_id" json:"group_id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Status     string             `bson:"status" json:"status"`
	DateJoined time.Time          `bson:"date_joined" json:"date_joined"`
}

// ValidStatus reports whether s is a storable membership status.
func ValidStatus(s string) bool {
	return s == StatusMember || s == StatusPending
}
