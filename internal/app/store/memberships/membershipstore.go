// internal/app/store/memberships/membershipstore.go
package membershipstore

// Pure data access for the group membership ledger. All membership
// policy (promotion rules, triggers, eligibility) lives in the
// membership service; this store only guarantees one document per
// (group_id, user_id) pair.

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
	return &Store{c: db.Collection("group_memberships")}
}

// GetOrCreate returns the ledger row for (groupID, userID), creating it
// with the given status and the current time when absent. The upsert is
// a single FindOneAndUpdate with $setOnInsert, so two concurrent calls
// for the same pair cannot create duplicate rows; the unique index backs
// it up. created reports whether this call inserted the row.
func (s *Store) GetOrCreate(ctx context.Context, groupID, userID primitive.ObjectID, status string) (m models.GroupMembership, created bool, err error) {
	filter := bson.M{"group_id": groupID, "user_id": userID}
	update := bson.M{"$setOnInsert": bson.M{
		"group_id":    groupID,
		"user_id":     userID,
		"status":      status,
		"date_joined": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	err = s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&m)
	if err == mongo.ErrNoDocuments {
		// No prior document: the upsert inserted one.
		err = s.c.FindOne(ctx, filter).Decode(&m)
		return m, true, err
	}
	if err != nil {
		return models.GroupMembership{}, false, err
	}
	return m, false, nil
}

// Get returns the ledger row for (groupID, userID).
func (s *Store) Get(ctx context.Context, groupID, userID primitive.ObjectID) (models.GroupMembership, error) {
	var m models.GroupMembership
	err := s.c.FindOne(ctx, bson.M{"group_id": groupID, "user_id": userID}).Decode(&m)
	if err != nil {
		return models.GroupMembership{}, err
	}
	return m, nil
}

// ExistsWithStatus reports whether (groupID, userID) has a row with the
// given status.
func (s *Store) ExistsWithStatus(ctx context.Context, groupID, userID primitive.ObjectID, status string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"group_id": groupID,
		"user_id":  userID,
		"status":   status,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetStatus updates the status of an existing row.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
	return err
}

// Delete removes the row for (groupID, userID). Missing rows are not an
// error; removal is idempotent.
func (s *Store) Delete(ctx context.Context, groupID, userID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"group_id": groupID, "user_id": userID})
	return err
}

// ListByGroup returns all rows for a group, optionally filtered by
// status (empty means all).
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID, status string) ([]models.GroupMembership, error) {
	filter := bson.M{"group_id": groupID}
	if status != "" {
		filter["status"] = status
	}
	return s.list(ctx, filter)
}

// ListByGroups returns all rows belonging to any of the given groups.
func (s *Store) ListByGroups(ctx context.Context, groupIDs []primitive.ObjectID) ([]models.GroupMembership, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	return s.list(ctx, bson.M{"group_id": bson.M{"$in": groupIDs}})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.GroupMembership, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.GroupMembership
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteByGroup removes all rows for a group. Returns the number of
// documents deleted.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByUser removes all of a profile's rows across groups. Returns
// the number of documents deleted.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByGroup returns the count of rows for a group, optionally
// filtered by status.
func (s *Store) CountByGroup(ctx context.Context, groupID primitive.ObjectID, status string) (int64, error) {
	filter := bson.M{"group_id": groupID}
	if status != "" {
		filter["status"] = status
	}
	return s.c.CountDocuments(ctx, filter)
}
