// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership join policies for a group.
const (
	AcceptingYes       = "yes"
	AcceptingByRequest = "by_request"
	AcceptingNo        = "no"
)

// Group is a named community area that profiles join, leave, or request
// to join.
//
// NOTE:
//   - Name is stored lowercase (lowered on every save path).
//   - URL is the slug of the group's first alias and never changes after
//     it is assigned, even if the group is later renamed. Renames create
//     a new alias row instead.
//   - Membership is not embedded here; the group_memberships collection
//     is authoritative.
type Group struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"`
	URL    string             `bson:"url" json:"url"`

	Description       string `bson:"description" json:"description"`
	NewMemberCriteria string `bson:"new_member_criteria,omitempty" json:"new_member_criteria,omitempty"`
	IRCChannel        string `bson:"irc_channel,omitempty" json:"irc_channel,omitempty"`
	Website           string `bson:"website,omitempty" json:"website,omitempty"`
	Wiki              string `bson:"wiki,omitempty" json:"wiki,omitempty"`

	// CuratorID is a weak reference: deleting the curator's profile clears
	// this field, it never deletes the group.
	CuratorID *primitive.ObjectID `bson:"curator_id,omitempty" json:"curator_id,omitempty"`

	MembersCanLeave     bool   `bson:"members_can_leave" json:"members_can_leave"`
	AcceptingNewMembers string `bson:"accepting_new_members" json:"accepting_new_members"`

	// FunctionalArea marks groups whose membership changes are mirrored to
	// the external marketing list.
	FunctionalArea bool `bson:"functional_area" json:"functional_area"`

	// Visible controls inclusion in search and listings. System groups
	// are hidden by marking them invisible.
	Visible bool `bson:"visible" json:"visible"`

	// MaxReminder is the highest pending-membership watermark already
	// covered by a curator reminder.
	MaxReminder int64 `bson:"max_reminder" json:"max_reminder"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsVisible reports whether the group appears in search and listings.
func (g Group) IsVisible() bool {
	return g.Visible
}

// Accepting returns the join policy, defaulting to open membership when
// the field was never set.
func (g Group) Accepting() string {
	if g.AcceptingNewMembers == "" {
		return AcceptingYes
	}
	return g.AcceptingNewMembers
}

// IsCurator reports whether the given profile curates this group.
func (g Group) IsCurator(profileID primitive.ObjectID) bool {
	return g.CuratorID != nil && *g.CuratorID == profileID
}
