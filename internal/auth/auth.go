// Package auth handles sign-up, sign-in and token verification. Passwords
// are stored as bcrypt hashes; sessions are stateless HS256 JWTs carrying
// the user id as subject.
package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailRequired      = errors.New("email is required")
	ErrWeakPassword       = errors.New("password must have at least 6 characters")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// User is an account row with its credential hash. Only this package sees
// the hash; the rest of the app works with profile.Profile.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}
