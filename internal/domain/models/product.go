package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a commerce listing. Within this service it is only the
// subject of moderation: superAdmin delete and activate/deactivate.
type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Owner    primitive.ObjectID `bson:"owner,omitempty" json:"owner,omitempty"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
	IsActive bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
