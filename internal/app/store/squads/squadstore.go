package squadstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/verdantapp/verdant/internal/app/system/normalize"
	"github.com/verdantapp/verdant/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("squads")}
}

// GetByID loads a squad by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Squad, error) {
	var sq models.Squad
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sq); err != nil {
		return nil, err
	}
	return &sq, nil
}

// Create inserts a new squad with initialized member/moderator arrays.
func (s *Store) Create(ctx context.Context, sq models.Squad) (models.Squad, error) {
	sq.ID = primitive.NewObjectID()
	sq.Name = normalize.Name(sq.Name)
	if sq.Members == nil {
		sq.Members = []primitive.ObjectID{}
	}
	if sq.Moderators == nil {
		sq.Moderators = []primitive.ObjectID{}
	}

	now := time.Now()
	sq.CreatedAt = now
	sq.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sq); err != nil {
		return models.Squad{}, err
	}
	return sq, nil
}

// ClearMembers empties the squad's members and moderators lists. Part
// of the deletion cascade, run before the document itself is removed.
func (s *Store) ClearMembers(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"members":    []primitive.ObjectID{},
			"moderators": []primitive.ObjectID{},
			"updated_at": time.Now(),
		}},
	)
	return err
}

// Delete removes the squad document, returning the deleted count.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
