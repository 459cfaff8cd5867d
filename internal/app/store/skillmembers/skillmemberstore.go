// internal/app/store/skillmembers/skillmemberstore.go
package skillmemberstore

import (
	"context"
	"time"

	"github.com/dalemusser/commonshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("skill_members")}
}

// Add links userID to skillID. Adding an existing member is a no-op;
// the upsert plus the unique index keep the pair single under
// concurrency. Returns whether a new link was created.
func (s *Store) Add(ctx context.Context, skillID, userID primitive.ObjectID) (bool, error) {
	filter := bson.M{"skill_id": skillID, "user_id": userID}
	update := bson.M{"$setOnInsert": bson.M{
		"skill_id":    skillID,
		"user_id":     userID,
		"date_joined": time.Now().UTC(),
	}}
	res, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// Remove unlinks userID from skillID. Missing links are a no-op.
func (s *Store) Remove(ctx context.Context, skillID, userID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"skill_id": skillID, "user_id": userID})
	return err
}

// Has reports whether userID is linked to skillID.
func (s *Store) Has(ctx context.Context, skillID, userID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"skill_id": skillID, "user_id": userID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListBySkill returns all member links for a skill.
func (s *Store) ListBySkill(ctx context.Context, skillID primitive.ObjectID) ([]models.SkillMember, error) {
	return s.list(ctx, bson.M{"skill_id": skillID})
}

// ListBySkills returns all member links for any of the given skills.
func (s *Store) ListBySkills(ctx context.Context, skillIDs []primitive.ObjectID) ([]models.SkillMember, error) {
	if len(skillIDs) == 0 {
		return nil, nil
	}
	return s.list(ctx, bson.M{"skill_id": bson.M{"$in": skillIDs}})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.SkillMember, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.SkillMember
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteBySkill removes all links for a skill. Returns the number of
// documents deleted.
func (s *Store) DeleteBySkill(ctx context.Context, skillID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"skill_id": skillID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByUser removes all of a profile's skill links.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
