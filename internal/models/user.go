package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user account in LinkUp.
type User struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username         string               `bson:"username" json:"username"`
	Email            string               `bson:"email" json:"email"`
	FullName         string               `bson:"full_name" json:"full_name"`
	Bio              string               `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar           string               `bson:"avatar,omitempty" json:"avatar,omitempty"`
	IsPrivate        bool                 `bson:"is_private" json:"is_private"`
	HashedPassword   string               `bson:"hashed_password" json:"-"`
	Role             string               `bson:"role" json:"role"`
	Friends          []primitive.ObjectID `bson:"friends,omitempty" json:"friends,omitempty"`
	PostsCount       int                  `bson:"posts_count" json:"posts_count"`
	ConnectionsCount int                  `bson:"connections_count" json:"connections_count"`
	LastActiveAt     time.Time            `bson:"last_active_at,omitempty" json:"-"`
	CreatedAt        time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time            `bson:"updated_at" json:"-"`
}

// PublicUser is the projection of a user that other users are allowed to see.
type PublicUser struct {
	ID               primitive.ObjectID `json:"id"`
	Username         string             `json:"username"`
	FullName         string             `json:"full_name"`
	Bio              string             `json:"bio,omitempty"`
	Avatar           string             `json:"avatar,omitempty"`
	IsPrivate        bool               `json:"is_private"`
	ConnectionsCount int                `json:"connections_count"`
}

// Public converts the full document into its public projection.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:               u.ID,
		Username:         u.Username,
		FullName:         u.FullName,
		Bio:              u.Bio,
		Avatar:           u.Avatar,
		IsPrivate:        u.IsPrivate,
		ConnectionsCount: u.ConnectionsCount,
	}
}
