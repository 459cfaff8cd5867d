// internal/app/store/aliases/aliasstore.go
package aliasstore

// Alias registry: many historical names per group or skill, each with a
// slug that is assigned once and never rewritten. The registry is what
// makes renames and merges search-safe — old names keep resolving to the
// surviving entity.

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/dalemusser/commonshub/internal/app/system/slugify"
	"github.com/dalemusser/commonshub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names for the two alias kinds.
const (
	GroupAliases = "group_aliases"
	SkillAliases = "skill_aliases"
)

var ErrDuplicateAliasName = errors.New("an alias with this name already exists")

type Store struct {
	c *mongo.Collection
}

// New creates a Store over one of the alias collections (GroupAliases or
// SkillAliases).
func New(db *mongo.Database, collection string) *Store {
	return &Store{c: db.Collection(collection)}
}

// Create inserts an alias for ownerID with the given name (lowercased)
// and a freshly derived slug. Slug derivation is deterministic; on slug
// collision an incrementing -2, -3, … suffix is tried until a free slug
// is found. The unique index on name maps to ErrDuplicateAliasName.
func (s *Store) Create(ctx context.Context, name string, ownerID primitive.ObjectID) (models.Alias, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	url, err := s.freeSlug(ctx, slugify.Make(name))
	if err != nil {
		return models.Alias{}, err
	}

	a := models.Alias{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		URL:       url,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Alias{}, ErrDuplicateAliasName
		}
		return models.Alias{}, err
	}
	return a, nil
}

// freeSlug returns base, or base with the lowest free numeric suffix.
func (s *Store) freeSlug(ctx context.Context, base string) (string, error) {
	for n := 1; ; n++ {
		candidate := slugify.WithSuffix(base, n)
		count, err := s.c.CountDocuments(ctx, bson.M{"url": candidate})
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
}

// NameTakenByOther reports whether name (case-insensitively) belongs to
// an alias owned by some entity other than ownerID. Pass
// primitive.NilObjectID for entities that do not exist yet.
func (s *Store) NameTakenByOther(ctx context.Context, name string, ownerID primitive.ObjectID) (bool, error) {
	filter := bson.M{"name_ci": text.Fold(strings.ToLower(strings.TrimSpace(name)))}
	if ownerID != primitive.NilObjectID {
		filter["owner_id"] = bson.M{"$ne": ownerID}
	}
	err := s.c.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SearchOwnerIDs returns the distinct owners of aliases whose name
// contains query as a substring, case-insensitively. The substring is
// unanchored.
func (s *Store) SearchOwnerIDs(ctx context.Context, query string) ([]primitive.ObjectID, error) {
	pattern := regexp.QuoteMeta(text.Fold(strings.ToLower(query)))
	raw, err := s.c.Distinct(ctx, "owner_id", bson.M{
		"name_ci": primitive.Regex{Pattern: pattern},
	})
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// GetBySlug looks up the alias with the given URL slug.
func (s *Store) GetBySlug(ctx context.Context, url string) (models.Alias, error) {
	var a models.Alias
	if err := s.c.FindOne(ctx, bson.M{"url": url}).Decode(&a); err != nil {
		return models.Alias{}, err
	}
	return a, nil
}

// ListByOwner returns all aliases owned by ownerID.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Alias, error) {
	cur, err := s.c.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var aliases []models.Alias
	if err := cur.All(ctx, &aliases); err != nil {
		return nil, err
	}
	return aliases, nil
}

// Repoint moves every alias owned by fromOwner to toOwner. Used by merge
// cleanup so the absorbed entity's names resolve to the survivor.
// Returns the number of aliases moved.
func (s *Store) Repoint(ctx context.Context, fromOwner, toOwner primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"owner_id": fromOwner},
		bson.M{"$set": bson.M{"owner_id": toOwner}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// DeleteByOwner removes all aliases owned by ownerID. Returns the number
// of documents deleted.
func (s *Store) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
