package domain

import "time"

type User struct {
	ID               string    `bson:"_id,omitempty" json:"id,omitempty"`
	Name             string    `bson:"name" json:"name"`
	Email            string    `bson:"email" json:"email"`
	PasswordHash     string    `bson:"password" json:"-"`
	IsAdmin          bool      `bson:"is_admin" json:"is_admin"`
	ResetToken       string    `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpiry time.Time `bson:"reset_token_expiry,omitempty" json:"-"`
}
