package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	Username     string `bson:"username" json:"username"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash" json:"-"` // Never returned in JSON

	Bio         string    `bson:"bio" json:"bio"`
	PhoneNumber string    `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	FullName    string    `bson:"full_name,omitempty" json:"full_name,omitempty"`
	AvatarURL   string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	MemberSince time.Time `bson:"member_since,omitempty" json:"member_since"`
}

// MemberSinceOrCreated falls back to the creation timestamp for accounts
// that predate the member_since field.
func (u *User) MemberSinceOrCreated() time.Time {
	if u.MemberSince.IsZero() {
		return u.CreatedAt
	}
	return u.MemberSince
}
