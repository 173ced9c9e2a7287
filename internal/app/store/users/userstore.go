package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/verdantapp/verdant/internal/app/system/normalize"
	"github.com/verdantapp/verdant/internal/domain/models"
)

var (
	// ErrDuplicate is returned when a unique field (email, contact,
	// referral code) already exists on another user.
	ErrDuplicate = errors.New("a user with this email or contact already exists")

	// ErrRequestExists is returned when a pending connection request
	// from the same user is already queued.
	ErrRequestExists = errors.New("connection request already pending")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByReferralCode resolves a referral code to its owner.
func (s *Store) GetByReferralCode(ctx context.Context, code string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"referral.code": code}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing fields and initializing
// the embedded arrays so later $addToSet/$pull updates never hit a
// null field. Password must already be hashed.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.Email = normalize.Email(u.Email)
	u.Contact = normalize.Contact(u.Contact)

	if u.Squads == nil {
		u.Squads = []primitive.ObjectID{}
	}
	if u.Saves == nil {
		u.Saves = []primitive.ObjectID{}
	}
	if u.Connections == nil {
		u.Connections = []primitive.ObjectID{}
	}
	if u.ConnectionRequests == nil {
		u.ConnectionRequests = []models.ConnectionRequest{}
	}
	if u.Feed.Excluded == nil {
		u.Feed.Excluded = []primitive.ObjectID{}
	}
	if u.Referral.ReferredUsers == nil {
		u.Referral.ReferredUsers = []primitive.ObjectID{}
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

// List returns all users with the password excluded from the
// projection.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"password": 0}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// HideFromFeed adds a post id to the user's feed exclusion set.
func (s *Store) HideFromFeed(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"feed.excluded": postID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

// AddSave / RemoveSave mutate the user side of the save pair. The post
// side lives in poststore; both run together inside a transaction.
func (s *Store) AddSave(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"saves": postID}},
	)
	return err
}

func (s *Store) RemoveSave(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"saves": postID}},
	)
	return err
}

// PullSquadFromAll removes a squad id from every user's squads array.
// First step of the squad deletion cascade.
func (s *Store) PullSquadFromAll(ctx context.Context, squadID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"squads": squadID},
		bson.M{"$pull": bson.M{"squads": squadID}},
	)
	return err
}

// AddConnectionRequest queues a pending request from one user to
// another. The filter refuses a second request while one from the same
// sender is already present, so the push is atomic with the check.
func (s *Store) AddConnectionRequest(ctx context.Context, to, from primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":                      to,
			"connection_requests.from": bson.M{"$ne": from},
		},
		bson.M{
			"$push": bson.M{"connection_requests": models.ConnectionRequest{From: from, Status: "pending"}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the target does not exist or a request is already
		// queued; distinguish for the caller.
		if err := s.c.FindOne(ctx, bson.M{"_id": to}).Err(); err != nil {
			return err
		}
		return ErrRequestExists
	}
	return nil
}

// ApproveConnectionRequest marks the pending request from `from` on
// `to`'s document as approved. Returns mongo.ErrNoDocuments when no
// pending request matches.
func (s *Store) ApproveConnectionRequest(ctx context.Context, to, from primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id": to,
			"connection_requests": bson.M{
				"$elemMatch": bson.M{"from": from, "status": "pending"},
			},
		},
		bson.M{
			"$set": bson.M{
				"connection_requests.$.status": "approved",
				"updated_at":                   time.Now(),
			},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddConnection records other in the user's connections set.
func (s *Store) AddConnection(ctx context.Context, userID, other primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"connections": other},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

// CreditReferral records a referred signup on the referrer: the new
// user joins referral.referred_users and the earned total increases.
func (s *Store) CreditReferral(ctx context.Context, referrerID, newUserID primitive.ObjectID, earned int) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": referrerID},
		bson.M{
			"$addToSet": bson.M{"referral.referred_users": newUserID},
			"$inc":      bson.M{"referral.total_earned": earned},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	return err
}
