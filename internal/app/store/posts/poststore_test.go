package poststore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	poststore "github.com/verdantapp/verdant/internal/app/store/posts"
	"github.com/verdantapp/verdant/internal/domain/models"
	"github.com/verdantapp/verdant/internal/testutil"
)

func TestToggleLike(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	store := poststore.New(db)
	user := primitive.NewObjectID()

	p, err := store.Create(ctx, models.Post{
		Title: "T", Content: "C",
		Creator: primitive.NewObjectID(), Squad: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	likes, liked, err := store.ToggleLike(ctx, p.ID, user)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !liked || likes != 1 {
		t.Errorf("first toggle = (%d, %v), want (1, true)", likes, liked)
	}

	likes, liked, err = store.ToggleLike(ctx, p.ID, user)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if liked || likes != 0 {
		t.Errorf("second toggle = (%d, %v), want (0, false)", likes, liked)
	}
}

func TestListExcluding(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	store := poststore.New(db)
	squad := primitive.NewObjectID()
	creator := primitive.NewObjectID()

	keep, err := store.Create(ctx, models.Post{Title: "keep", Content: "c", Creator: creator, Squad: squad})
	if err != nil {
		t.Fatalf("create keep: %v", err)
	}
	drop, err := store.Create(ctx, models.Post{Title: "drop", Content: "c", Creator: creator, Squad: squad})
	if err != nil {
		t.Fatalf("create drop: %v", err)
	}

	got, err := store.ListExcluding(ctx, []primitive.ObjectID{drop.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != keep.ID {
		t.Errorf("list = %v, want only %s", got, keep.ID.Hex())
	}
}
