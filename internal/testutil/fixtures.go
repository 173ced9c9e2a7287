package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/verdantapp/verdant/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// HashPassword bcrypt-hashes a password at a low cost suitable for
// tests.
func HashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing test password: %v", err)
	}
	return string(hash)
}

// CreateUser inserts a user with sensible defaults and the given email
// and password (stored hashed).
func (f *Fixtures) CreateUser(ctx context.Context, name, email, password string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:                 primitive.NewObjectID(),
		Name:               name,
		Email:              email,
		Password:           HashPassword(f.t, password),
		Contact:            email, // unique per user in tests
		Squads:             []primitive.ObjectID{},
		Saves:              []primitive.ObjectID{},
		Connections:        []primitive.ObjectID{},
		ConnectionRequests: []models.ConnectionRequest{},
		Feed:               models.Feed{Excluded: []primitive.ObjectID{}},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateAdmin inserts an admin with the given role.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email, password, role string) models.Admin {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Admin{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  HashPassword(f.t, password),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("admins").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}
	return a
}

// CreateSquad inserts a squad with the given members and moderators and
// records the membership on each member's user document.
func (f *Fixtures) CreateSquad(ctx context.Context, name string, members, moderators []primitive.ObjectID) models.Squad {
	f.t.Helper()

	if members == nil {
		members = []primitive.ObjectID{}
	}
	if moderators == nil {
		moderators = []primitive.ObjectID{}
	}

	now := time.Now().UTC()
	sq := models.Squad{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Members:    members,
		Moderators: moderators,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("squads").InsertOne(ctx, sq); err != nil {
		f.t.Fatalf("failed to create test squad: %v", err)
	}

	for _, m := range members {
		_, err := f.db.Collection("users").UpdateOne(ctx,
			bson.M{"_id": m},
			bson.M{"$addToSet": bson.M{"squads": sq.ID}},
		)
		if err != nil {
			f.t.Fatalf("failed to record squad membership: %v", err)
		}
	}
	return sq
}

// CreatePost inserts a post into the given squad.
func (f *Fixtures) CreatePost(ctx context.Context, squadID, creatorID primitive.ObjectID, title string) models.Post {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Post{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Content:   "test content",
		Creator:   creatorID,
		Squad:     squadID,
		Images:    []string{},
		Likes:     []primitive.ObjectID{},
		Saves:     []primitive.ObjectID{},
		Comments:  []primitive.ObjectID{},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return p
}

// CreateComment inserts a comment and appends its id to the post's
// comments array.
func (f *Fixtures) CreateComment(ctx context.Context, postID, creatorID primitive.ObjectID, content string) models.Comment {
	f.t.Helper()

	now := time.Now().UTC()
	cm := models.Comment{
		ID:        primitive.NewObjectID(),
		Content:   content,
		Creator:   creatorID,
		Post:      postID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("comments").InsertOne(ctx, cm); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	_, err := f.db.Collection("posts").UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": cm.ID}},
	)
	if err != nil {
		f.t.Fatalf("failed to link test comment: %v", err)
	}
	return cm
}

// CreateProduct inserts a product.
func (f *Fixtures) CreateProduct(ctx context.Context, name string, active bool) models.Product {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Product{
		ID:        primitive.NewObjectID(),
		Name:      name,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("products").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test product: %v", err)
	}
	return p
}
