// internal/app/store/skills/skillstore.go
package skillstore

import (
	"context"
	"strings"
	"time"

	aliasstore "github.com/dalemusser/commonshub/internal/app/store/aliases"
	"github.com/dalemusser/commonshub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c       *mongo.Collection
	aliases *aliasstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:       db.Collection("skills"),
		aliases: aliasstore.New(db, aliasstore.SkillAliases),
	}
}

// Aliases exposes the skill alias registry.
func (s *Store) Aliases() *aliasstore.Store {
	return s.aliases
}

// Create mirrors the group save flow: lowercase the name, check it
// against other skills' aliases, insert, create the first alias, adopt
// its slug. Skills carry no extra fields.
func (s *Store) Create(ctx context.Context, sk models.Skill) (models.Skill, error) {
	sk.Name = strings.ToLower(strings.TrimSpace(sk.Name))

	taken, err := s.aliases.NameTakenByOther(ctx, sk.Name, primitive.NilObjectID)
	if err != nil {
		return models.Skill{}, err
	}
	if taken {
		return models.Skill{}, models.NameExists()
	}

	now := time.Now().UTC()
	sk.ID = primitive.NewObjectID()
	sk.NameCI = text.Fold(sk.Name)
	sk.CreatedAt = now
	sk.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sk); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Skill{}, models.NameExists()
		}
		return models.Skill{}, err
	}

	alias, err := s.aliases.Create(ctx, sk.Name, sk.ID)
	if err != nil {
		_, _ = s.c.DeleteOne(ctx, bson.M{"_id": sk.ID})
		if err == aliasstore.ErrDuplicateAliasName {
			return models.Skill{}, models.NameExists()
		}
		return models.Skill{}, err
	}

	sk.URL = alias.URL
	if _, err := s.c.UpdateByID(ctx, sk.ID, bson.M{"$set": bson.M{"url": sk.URL}}); err != nil {
		return models.Skill{}, err
	}
	return sk, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Skill, error) {
	var sk models.Skill
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sk); err != nil {
		return models.Skill{}, err
	}
	return sk, nil
}

// GetByURL resolves a slug through the alias registry.
func (s *Store) GetByURL(ctx context.Context, url string) (models.Skill, error) {
	a, err := s.aliases.GetBySlug(ctx, url)
	if err != nil {
		return models.Skill{}, err
	}
	return s.GetByID(ctx, a.OwnerID)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Search returns the distinct skills having any alias that contains
// query as a substring, case-insensitively, ordered by name. Skills have
// no visibility flag, so nothing is filtered out.
func (s *Store) Search(ctx context.Context, query string) ([]models.Skill, error) {
	ids, err := s.aliases.SearchOwnerIDs(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Skill{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var skills []models.Skill
	if err := cur.All(ctx, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}
