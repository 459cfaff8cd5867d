// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"strings"
	"time"

	aliasstore "github.com/dalemusser/commonshub/internal/app/store/aliases"
	"github.com/dalemusser/commonshub/internal/app/system/paging"
	"github.com/dalemusser/commonshub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c       *mongo.Collection
	aliases *aliasstore.Store
	strip   *bluemonday.Policy
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:       db.Collection("groups"),
		aliases: aliasstore.New(db, aliasstore.GroupAliases),
		strip:   bluemonday.StrictPolicy(),
	}
}

// Aliases exposes the group alias registry for callers that resolve
// slugs or repoint aliases during merges.
func (s *Store) Aliases() *aliasstore.Store {
	return s.aliases
}

// Create validates and inserts a group, then creates its first alias and
// copies the derived slug back onto the group. Name is lowercased before
// insert; user-supplied rich-text fields are stripped of markup.
//
// A name colliding with any existing group alias (including aliases of
// other groups) fails with a ValidationError on field "name".
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	g.Name = strings.ToLower(strings.TrimSpace(g.Name))

	taken, err := s.aliases.NameTakenByOther(ctx, g.Name, primitive.NilObjectID)
	if err != nil {
		return models.Group{}, err
	}
	if taken {
		return models.Group{}, models.NameExists()
	}

	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = text.Fold(g.Name)
	g.Description = s.strip.Sanitize(g.Description)
	g.NewMemberCriteria = s.strip.Sanitize(g.NewMemberCriteria)
	if g.AcceptingNewMembers == "" {
		g.AcceptingNewMembers = models.AcceptingYes
	}
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, models.NameExists()
		}
		return models.Group{}, err
	}

	// First save only: create the alias row and adopt its slug. The URL
	// field being non-empty afterwards is what makes later saves skip this.
	alias, err := s.aliases.Create(ctx, g.Name, g.ID)
	if err != nil {
		// Roll the half-created group back so a name race does not leave
		// a slug-less group behind.
		_, _ = s.c.DeleteOne(ctx, bson.M{"_id": g.ID})
		if err == aliasstore.ErrDuplicateAliasName {
			return models.Group{}, models.NameExists()
		}
		return models.Group{}, err
	}

	g.URL = alias.URL
	if _, err := s.c.UpdateByID(ctx, g.ID, bson.M{"$set": bson.M{"url": g.URL}}); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// GetByURL resolves a slug through the alias registry, so URLs of merged
// or renamed groups still land on the surviving group.
func (s *Store) GetByURL(ctx context.Context, url string) (models.Group, error) {
	a, err := s.aliases.GetBySlug(ctx, url)
	if err != nil {
		return models.Group{}, err
	}
	return s.GetByID(ctx, a.OwnerID)
}

// UpdateInfo renames and re-describes a group. The name is lowercased
// and re-validated against other groups' aliases; the slug is never
// regenerated. A rename records a fresh alias so the old name still
// finds the group.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, desc string) error {
	name = strings.ToLower(strings.TrimSpace(name))

	set := bson.M{
		"description": s.strip.Sanitize(desc),
		"updated_at":  time.Now().UTC(),
	}
	if name != "" {
		taken, err := s.aliases.NameTakenByOther(ctx, name, id)
		if err != nil {
			return err
		}
		if taken {
			return models.NameExists()
		}
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		if wafflemongo.IsDup(err) {
			return models.NameExists()
		}
		return err
	}

	if name != "" {
		// Idempotent: Create maps an already-recorded name to a duplicate,
		// which just means this rename was seen before.
		if _, err := s.aliases.Create(ctx, name, id); err != nil && err != aliasstore.ErrDuplicateAliasName {
			return err
		}
	}
	return nil
}

// SetCurator assigns (or, with nil, clears) the group's curator.
func (s *Store) SetCurator(ctx context.Context, id primitive.ObjectID, curatorID *primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}}
	if curatorID == nil {
		update["$unset"] = bson.M{"curator_id": ""}
	} else {
		update["$set"].(bson.M)["curator_id"] = *curatorID
	}
	_, err := s.c.UpdateByID(ctx, id, update)
	return err
}

// ClearCurator detaches profileID from every group it curates. Called
// when a profile is deleted; the groups themselves survive.
func (s *Store) ClearCurator(ctx context.Context, profileID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"curator_id": profileID},
		bson.M{"$unset": bson.M{"curator_id": ""}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SetMaxReminder advances the pending-reminder watermark.
func (s *Store) SetMaxReminder(ctx context.Context, id primitive.ObjectID, watermark int64) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"max_reminder": watermark}})
	return err
}

// Delete removes a group document only. Membership and alias cleanup is
// the membership service's job (merge) or the storage layer's (cascade).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Search returns the distinct visible groups having any alias that
// contains query as a substring, case-insensitively, ordered by name.
func (s *Store) Search(ctx context.Context, query string) ([]models.Group, error) {
	ids, err := s.aliases.SearchOwnerIDs(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Group{}, nil
	}
	return s.list(ctx, bson.M{"_id": bson.M{"$in": ids}, "visible": true})
}

// FunctionalAreas returns all visible functional-area groups.
func (s *Store) FunctionalAreas(ctx context.Context) ([]models.Group, error) {
	return s.list(ctx, bson.M{"functional_area": true, "visible": true})
}

// NonFunctionalAreas returns all visible non-functional-area groups,
// narrowed by any extra filter the caller supplies.
func (s *Store) NonFunctionalAreas(ctx context.Context, extra bson.M) ([]models.Group, error) {
	filter := bson.M{"functional_area": false, "visible": true}
	for k, v := range extra {
		filter[k] = v
	}
	return s.list(ctx, filter)
}

// Curated returns the visible groups that have a curator.
func (s *Store) Curated(ctx context.Context) ([]models.Group, error) {
	return s.list(ctx, bson.M{"visible": true, "curator_id": bson.M{"$exists": true}})
}

// ListVisiblePage returns one keyset page of the visible
// non-functional-area groups ordered by folded name. before/after are
// opaque cursors from a previous page.
func (s *Store) ListVisiblePage(ctx context.Context, before, after string) ([]models.Group, paging.Result, error) {
	cfg := paging.ConfigureKeyset(before, after)

	filter := bson.M{"functional_area": false, "visible": true}
	if window := cfg.KeysetWindow("name_ci"); window != nil {
		for k, v := range window {
			filter[k] = v
		}
	}

	opts := options.Find()
	cfg.ApplyToFind(opts, "name_ci")

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, paging.Result{}, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, paging.Result{}, err
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(groups)
	}
	res := paging.TrimPage(&groups, before, after)
	return groups, res, nil
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
