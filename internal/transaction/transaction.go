package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("transaction not found")
	ErrTitleRequired  = errors.New("title is required")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrInvalidAccount = errors.New("invalid account type")
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// AccountType partitions a user's data into a personal and a business ledger.
// Every query and mutation is scoped to exactly one of the two.
type AccountType string

const (
	AccountPersonal AccountType = "personal"
	AccountBusiness AccountType = "business"
)

func (a AccountType) Valid() bool {
	return a == AccountPersonal || a == AccountBusiness
}

// Transaction represents a financial transaction owned by a single user.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Amount      int64 // Amount in cents
	Type        Type
	AccountType AccountType
	Date        time.Time // Calendar date, no time component
	CategoryID  *uuid.UUID
	Category    *CategoryRef // Loaded via JOIN
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// CategoryRef carries the display fields of the referenced category.
// It is nil when the transaction has no category or the category was deleted.
type CategoryRef struct {
	ID    uuid.UUID
	Name  string
	Color string
}
