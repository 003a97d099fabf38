// Package category manages the user-defined labels transactions are grouped
// under. Categories are scoped per user and account type; deleting one leaves
// its transactions in place with the reference cleared.
package category

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/granahq/grana/internal/transaction"
)

var (
	ErrNotFound     = errors.New("category not found")
	ErrNameRequired = errors.New("name is required")
	ErrInvalidColor = errors.New("color must be a hex string like #10B981")
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	Type      transaction.AccountType
	CreatedAt time.Time
}
