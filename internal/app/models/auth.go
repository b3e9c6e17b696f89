package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserAuth is the user row as needed by authentication.
type UserAuth struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password_hash"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Claims are the JWT claims carried by access tokens.
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// CredentialProfile is the displayable identity inside a credential bundle.
type CredentialProfile struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// CredentialBundle is the persisted session payload: an opaque token plus the
// profile it was issued for. Serialized as JSON text under the
// application-namespaced storage key.
type CredentialBundle struct {
	Token string            `json:"token"`
	User  CredentialProfile `json:"user"`
}
