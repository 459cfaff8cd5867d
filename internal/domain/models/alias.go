// internal/domain/models/alias.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alias maps a historical or canonical name to a stable URL slug.
// Aliases are many-to-one with their owning group or skill: the first
// alias is created on the owner's first save, and merges repoint the
// absorbed entity's aliases at the surviving one so old names keep
// resolving.
//
// Group aliases live in group_aliases, skill aliases in skill_aliases;
// name and url are each unique within their own collection. URL is
// assigned once and never rewritten.
type Alias struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Name    string             `bson:"name" json:"name"`
	NameCI  string             `bson:"name_ci" json:"name_ci"`
	URL     string             `bson:"url" json:"url"`
	OwnerID primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
