// internal/domain/models/skill.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Skill is the second group-like kind: a taxonomy entry profiles tag
// themselves with. Skills have no curator, no join policy, and no pending
// state; membership is binary. Name and URL behave exactly like Group's.
type Skill struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"`
	URL    string             `bson:"url" json:"url"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
