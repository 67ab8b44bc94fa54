package entity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents a registered user in the system
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Bio          *string   `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarKey    *string   `bson:"avatar_key,omitempty" json:"avatar_key,omitempty"`
	PostCount    int       `bson:"post_count" json:"post_count"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Claims carries the identity extracted from a verified access or refresh token.
type Claims struct {
	UserID string
	jwt.RegisteredClaims
}

// RefreshToken is a stored (hashed) refresh token bound to a user session.
type RefreshToken struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	TokenHash string    `bson:"token_hash" json:"-"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	Revoked   bool      `bson:"revoked" json:"revoked"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
