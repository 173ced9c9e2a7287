package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is user content published into a squad.
//
// Likes and Saves are user id sets mutated with $addToSet/$pull so
// concurrent toggles never lose updates. Saves is mirrored on
// User.Saves: postId in user.saves iff userId in post.saves, and both
// sides change together. Comments holds the ids of the Comment
// documents whose Post field points back here.
type Post struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`
	Creator primitive.ObjectID `bson:"creator" json:"creator"`
	Squad   primitive.ObjectID `bson:"squad" json:"squad"`

	Category string   `bson:"category,omitempty" json:"category,omitempty"`
	Tags     []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Images   []string `bson:"image" json:"image"`

	Likes    []primitive.ObjectID `bson:"likes" json:"likes"`
	Saves    []primitive.ObjectID `bson:"saves" json:"saves"`
	Comments []primitive.ObjectID `bson:"comments" json:"comments"`
	Shares   int                  `bson:"shares" json:"shares"`

	IsActive bool `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Comment is a user comment on a post. Post is the back-link to the
// parent; the parent's Comments array must list this comment's id.
type Comment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content string             `bson:"content" json:"content"`
	Creator primitive.ObjectID `bson:"creator" json:"creator"`
	Post    primitive.ObjectID `bson:"post" json:"post"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
