// internal/domain/models/skillmember.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SkillMember links a profile to a skill. Skills have no pending state,
// so presence of the document is the whole story. One document per
// (skill_id, user_id).
type SkillMember struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SkillID    primitive.ObjectID `bson:"skill_id" json:"skill_id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	DateJoined time.Time          `bson:"date_joined" json:"date_joined"`
}
