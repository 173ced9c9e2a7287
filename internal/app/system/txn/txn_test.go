package txn

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/verdantapp/verdant/internal/testutil"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"unrelated error", errors.New("connection reset by peer"), false},
		{"code 20", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member"}, true},
		{"code 51", mongo.CommandError{Code: 51, Message: "Illegal operation"}, true},
		{"code 263", mongo.CommandError{Code: 263, Message: "Cannot run in a multi-document transaction"}, true},
		{"other command error", mongo.CommandError{Code: 11000, Message: "duplicate key"}, false},
		{"transaction on non replica set", errors.New("transaction failed: server is not a replica set member"), true},
		{"sessions unsupported", errors.New("session operations are not supported on this server"), true},
		{"transaction keyword alone", errors.New("transaction failed"), false},
		{"transaction in session state", errors.New("cannot start transaction in current session state"), true},
		{"illegal operation in transaction", errors.New("illegal operation during transaction"), true},
		{"mixed case keywords", errors.New("Transaction numbers require a Replica Set"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// Run must commit the callback's writes exactly once whether or not
// the server supports transactions. On a standalone server the first
// transactional attempt fails and the fallback re-runs the callback,
// so only the persisted effect is asserted, not the invocation count.
func TestRun_CommitsOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	err := Run(ctx, db, zap.NewNop(), func(ctx context.Context) error {
		_, err := db.Collection("probe").InsertOne(ctx, bson.M{"n": 1})
		return err
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	n, err := db.Collection("probe").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("documents = %d, want 1", n)
	}
}

func TestRun_PropagatesCallbackError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	sentinel := errors.New("boom")
	err := Run(ctx, db, zap.NewNop(), func(ctx context.Context) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("run returned %v, want the callback error", err)
	}
}
