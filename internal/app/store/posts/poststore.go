package poststore

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
	return &Store{c: db.Collection("posts")}
}

// GetByID loads a post by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new post with initialized engagement sets.
func (s *Store) Create(ctx context.Context, p models.Post) (models.Post, error) {
	p.ID = primitive.NewObjectID()
	if p.Images == nil {
		p.Images = []string{}
	}
	p.Likes = []primitive.ObjectID{}
	p.Saves = []primitive.ObjectID{}
	p.Comments = []primitive.ObjectID{}
	p.IsActive = true

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// PostUpdate holds the optional fields of a post update. Empty/nil
// values leave the stored field untouched.
type PostUpdate struct {
	Title    string
	Content  string
	Category string
	Tags     []string
}

// Update applies a PostUpdate and returns the updated document.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd PostUpdate) (*models.Post, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Title != "" {
		set["title"] = upd.Title
	}
	if upd.Content != "" {
		set["content"] = upd.Content
	}
	if upd.Category != "" {
		set["category"] = upd.Category
	}
	if upd.Tags != nil {
		set["tags"] = upd.Tags
	}

	var p models.Post
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the post document, returning the deleted count.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListExcluding returns all posts whose ids are not in the excluded
// set, newest first.
func (s *Store) ListExcluding(ctx context.Context, excluded []primitive.ObjectID) ([]models.Post, error) {
	filter := bson.M{}
	if len(excluded) > 0 {
		filter["_id"] = bson.M{"$nin": excluded}
	}

	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ToggleLike flips the caller's membership in the post's likes set and
// returns the resulting like count plus whether the post is now liked.
//
// Both directions use membership-filtered updates ($addToSet behind a
// $ne filter, $pull behind membership) so two concurrent toggles
// serialize on the server instead of racing a read-modify-write.
func (s *Store) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (likes int, liked bool, err error) {
	// Try to add first: matches only when the user is not in the set.
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": postID, "likes": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return 0, false, err
	}

	liked = res.MatchedCount > 0
	if !liked {
		// Already liked: remove.
		if _, err := s.c.UpdateOne(ctx,
			bson.M{"_id": postID},
			bson.M{"$pull": bson.M{"likes": userID}},
		); err != nil {
			return 0, false, err
		}
	}

	p, err := s.GetByID(ctx, postID)
	if err != nil {
		return 0, false, err
	}
	return len(p.Likes), liked, nil
}

// AddSave / RemoveSave mutate the post side of the save pair. The user
// side lives in userstore; both run together inside a transaction.
func (s *Store) AddSave(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"saves": userID}},
	)
	return err
}

func (s *Store) RemoveSave(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"saves": userID}},
	)
	return err
}

// AddComment appends a comment id to the post's comments array.
func (s *Store) AddComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": commentID}},
	)
	return err
}

// RemoveComment pulls a comment id from the post's comments array.
func (s *Store) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"comments": commentID}},
	)
	return err
}

// IncShares bumps the share counter atomically and returns the updated
// post.
func (s *Store) IncShares(ctx context.Context, postID primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$inc": bson.M{"shares": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
