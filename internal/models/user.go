package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Every user starts as a student; moderators and
// admins are promoted by an admin.
const (
	RoleStudent   = "student"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User represents a registered user. Email is the natural key and carries a
// unique index in the users collection.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email       string             `bson:"email" json:"email"`
	DisplayName string             `bson:"displayName" json:"displayName"`
	PhotoURL    string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role        string             `bson:"role" json:"role"`
	Password    string             `bson:"password,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Principal is the authenticated identity attached to a request by the auth
// middleware.
type Principal struct {
	Email string
	Role  string
}

// IsModerator reports whether the principal holds moderator or admin rights.
func (p Principal) IsModerator() bool {
	return p.Role == RoleModerator || p.Role == RoleAdmin
}
