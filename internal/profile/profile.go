package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrNameRequired  = errors.New("full name is required")
	ErrEmailRequired = errors.New("email is required")
)

// Profile is the user-visible subset of an account. Credentials live with the
// auth package; this package only reads and updates the mutable fields.
type Profile struct {
	ID        uuid.UUID
	FullName  string
	Email     string
	CreatedAt time.Time
}
