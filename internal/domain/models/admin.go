package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin roles. RoleSuperAdmin is a strict superset of RoleAdmin:
// only superAdmins may create or delete other admins, touch other
// superAdmin records, or run destructive squad/product moderation.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superAdmin"
)

// Admin is a staff account. Admins are created only by an existing
// superAdmin; the bootstrap superAdmin is seeded from config at startup.
type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsSuperAdmin reports whether the admin holds the superAdmin role.
func (a *Admin) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}
