package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/commonshub/internal/app/system/slugify"
	"github.com/dalemusser/commonshub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProfile creates a vouched test profile.
func (f *Fixtures) CreateProfile(ctx context.Context, fullName, email string) models.Profile {
	f.t.Helper()
	return f.createProfile(ctx, fullName, email, true)
}

// CreateUnvouchedProfile creates a profile without the external trust flag.
func (f *Fixtures) CreateUnvouchedProfile(ctx context.Context, fullName, email string) models.Profile {
	f.t.Helper()
	return f.createProfile(ctx, fullName, email, false)
}

func (f *Fixtures) createProfile(ctx context.Context, fullName, email string, vouched bool) models.Profile {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Profile{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Vouched:    vouched,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("profiles").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	return p
}

// CreateGroup creates a visible, open-membership test group with an
// alias and slug, mirroring the store's save flow.
func (f *Fixtures) CreateGroup(ctx context.Context, name string) models.Group {
	f.t.Helper()
	return f.CreateGroupWith(ctx, name, func(*models.Group) {})
}

// CreateGroupWith creates a test group after applying mutate to the
// defaults. Use it for functional areas, closed groups, curated groups,
// and invisible groups.
func (f *Fixtures) CreateGroupWith(ctx context.Context, name string, mutate func(*models.Group)) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.Group{
		ID:                  primitive.NewObjectID(),
		Name:                name,
		NameCI:              text.Fold(name),
		Description:         "Test group description",
		MembersCanLeave:     true,
		AcceptingNewMembers: models.AcceptingYes,
		Visible:             true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	mutate(&g)

	alias := f.CreateAlias(ctx, "group_aliases", g.Name, g.ID)
	g.URL = alias.URL

	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}

// CreateSkill creates a test skill with an alias and slug.
func (f *Fixtures) CreateSkill(ctx context.Context, name string) models.Skill {
	f.t.Helper()

	now := time.Now().UTC()
	sk := models.Skill{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	alias := f.CreateAlias(ctx, "skill_aliases", sk.Name, sk.ID)
	sk.URL = alias.URL

	if _, err := f.db.Collection("skills").InsertOne(ctx, sk); err != nil {
		f.t.Fatalf("failed to create test skill: %v", err)
	}
	return sk
}

// CreateAlias inserts an alias row directly, deriving the slug from the
// name the simple way (tests that need collision suffixes go through
// the real store).
func (f *Fixtures) CreateAlias(ctx context.Context, collection, name string, ownerID primitive.ObjectID) models.Alias {
	f.t.Helper()

	a := models.Alias{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		URL:       slugify.Make(name),
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection(collection).InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test alias: %v", err)
	}
	return a
}

// CreateMembership inserts a ledger row directly.
func (f *Fixtures) CreateMembership(ctx context.Context, groupID, userID primitive.ObjectID, status string) models.GroupMembership {
	f.t.Helper()

	m := models.GroupMembership{
		ID:         primitive.NewObjectID(),
		GroupID:    groupID,
		UserID:     userID,
		Status:     status,
		DateJoined: time.Now().UTC(),
	}
	if _, err := f.db.Collection("group_memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateSkillMember inserts a skill link directly.
func (f *Fixtures) CreateSkillMember(ctx context.Context, skillID, userID primitive.ObjectID) models.SkillMember {
	f.t.Helper()

	m := models.SkillMember{
		ID:         primitive.NewObjectID(),
		SkillID:    skillID,
		UserID:     userID,
		DateJoined: time.Now().UTC(),
	}
	if _, err := f.db.Collection("skill_members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test skill member: %v", err)
	}
	return m
}
