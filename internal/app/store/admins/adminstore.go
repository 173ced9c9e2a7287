package adminstore

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

// ErrDuplicateEmail is returned when creating an admin with an email
// that already exists.
var ErrDuplicateEmail = errors.New("an admin with this email already exists")

// ErrInvalidRole is returned when the role is not one of the two known
// values.
var ErrInvalidRole = errors.New(`role must be "admin" or "superAdmin"`)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

// GetByID loads an admin by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByEmail looks up an admin by normalized email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new admin after normalizing and validating fields.
// Password must already be hashed by the caller.
func (s *Store) Create(ctx context.Context, a models.Admin) (models.Admin, error) {
	a.ID = primitive.NewObjectID()
	a.Name = normalize.Name(a.Name)
	a.Email = normalize.Email(a.Email)

	switch a.Role {
	case models.RoleAdmin, models.RoleSuperAdmin:
		// ok
	default:
		return models.Admin{}, ErrInvalidRole
	}

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateEmail
		}
		return models.Admin{}, err
	}
	return a, nil
}

// UpdateProfile sets the name and/or email of an admin. Empty values
// leave the field untouched.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) (*models.Admin, error) {
	set := bson.M{"updated_at": time.Now()}
	if name != "" {
		set["name"] = normalize.Name(name)
	}
	if email != "" {
		set["email"] = normalize.Email(email)
	}

	var a models.Admin
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &a, nil
}

// UpdatePassword stores a new password hash.
func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password": hash, "updated_at": time.Now()}},
	)
	return err
}

// Delete removes an admin by id, returning the number of documents
// deleted (0 or 1). Permission checks happen before this call; the
// delete itself is a plain single-document removal.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns all admins with the password excluded from the
// projection.
func (s *Store) List(ctx context.Context) ([]models.Admin, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"password": 0}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var admins []models.Admin
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// CountSuperAdmins reports how many superAdmin records exist. Used by
// startup seeding.
func (s *Store) CountSuperAdmins(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"role": models.RoleSuperAdmin})
}
