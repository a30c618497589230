package models

import (
	"time"

	"github.com/MKhiriev/remy-site/internal/auth"
)

// User is an account able to log in and leave a review.
type User struct {
	// ID is an application-generated UUIDv7 string; it is the "sub" claim
	// of the account's session tokens.
	ID string `json:"id"`

	// Name is unique and doubles as the login.
	Name string `json:"name"`

	// PasswordHash is the encoded PBKDF2 record. Never serialized.
	PasswordHash string `json:"-"`

	Role auth.Role `json:"role"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials is the body of the register and login requests.
type Credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}
