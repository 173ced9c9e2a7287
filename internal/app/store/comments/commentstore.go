package commentstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/verdantapp/verdant/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

// GetByID loads a comment by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var cm models.Comment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// Create inserts a new comment. The caller is responsible for pushing
// the returned id onto the parent post's comments array in the same
// transaction.
func (s *Store) Create(ctx context.Context, cm models.Comment) (models.Comment, error) {
	cm.ID = primitive.NewObjectID()

	now := time.Now()
	cm.CreatedAt = now
	cm.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cm); err != nil {
		return models.Comment{}, err
	}
	return cm, nil
}

// Delete removes the comment document, returning the deleted count.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByPost returns all comments on a post, oldest first.
func (s *Store) ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	cur, err := s.c.Find(ctx, bson.M{"post": postID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
