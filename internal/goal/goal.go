// Package goal stores the monthly budget goals. Goals live outside the main
// database, in a local JSON key-value file keyed per account type, matching
// the app's browser-local storage: no cross-device sync, no versioning.
package goal

import (
	"errors"

	"github.com/granahq/grana/internal/transaction"
)

var ErrInvalidGoal = errors.New("goal values must be positive")

// Defaults applied when the user never saved goals, in cents.
const (
	DefaultExpenseLimit = 2000_00
	DefaultIncomeGoal   = 5000_00
)

// Goals is one account type's monthly targets, in cents.
type Goals struct {
	ExpenseLimit int64
	IncomeGoal   int64
}

// Progress reports how far actual totals are along each target, 0-100,
// capped at 100 like the planning page's progress bars.
func (g Goals) Progress(totalIncome, totalExpense int64) (incomePct, expensePct float64) {
	pct := func(actual, target int64) float64 {
		if target <= 0 {
			return 0
		}

		p := float64(actual) / float64(target) * 100

		return min(p, 100)
	}

	return pct(totalIncome, g.IncomeGoal), pct(totalExpense, g.ExpenseLimit)
}

// Service reads and writes goals for one account type at a time.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Get returns the saved goals for the account type, or the defaults when
// nothing was saved yet.
func (s *Service) Get(accountType transaction.AccountType) (Goals, error) {
	if !accountType.Valid() {
		return Goals{}, transaction.ErrInvalidAccount
	}

	return s.store.Load(accountType)
}

// Set validates and persists the goals for the account type.
func (s *Service) Set(accountType transaction.AccountType, g Goals) error {
	if !accountType.Valid() {
		return transaction.ErrInvalidAccount
	}

	if g.ExpenseLimit <= 0 || g.IncomeGoal <= 0 {
		return ErrInvalidGoal
	}

	return s.store.Save(accountType, g)
}
