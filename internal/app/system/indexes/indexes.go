package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll is called at startup. Each ensure* function is idempotent;
// errors are aggregated so every problem is visible and startup can
// fail fast.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureAdmins(ctx, db); err != nil {
		problems = append(problems, "admins: "+err.Error())
	}
	if err := ensurePosts(ctx, db); err != nil {
		problems = append(problems, "posts: "+err.Error())
	}
	if err := ensureComments(ctx, db); err != nil {
		problems = append(problems, "comments: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "contact", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_contact"),
		},
		{
			// Sparse: users created before referral codes existed have
			// no code field at all.
			Keys:    bson.D{{Key: "referral.code", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_referral_code"),
		},
	})
	return err
}

func ensureAdmins(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("admins").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	})
	return err
}

func ensurePosts(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("posts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "squad", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("squad_created"),
		},
		{
			Keys:    bson.D{{Key: "creator", Value: 1}},
			Options: options.Index().SetName("creator"),
		},
	})
	return err
}

func ensureComments(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("comments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "post", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("post_created"),
		},
	})
	return err
}
