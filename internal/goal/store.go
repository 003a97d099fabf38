package goal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/granahq/grana/internal/money"
	"github.com/granahq/grana/internal/transaction"
)

// Store is a JSON file of string-encoded decimal values under keys like
// "monthly-goal-personal" and "monthly-income-goal-business". Writes go
// through a temp file and rename so a crash never leaves a torn file.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func expenseKey(accountType transaction.AccountType) string {
	return fmt.Sprintf("monthly-goal-%s", accountType)
}

func incomeKey(accountType transaction.AccountType) string {
	return fmt.Sprintf("monthly-income-goal-%s", accountType)
}

func (s *Store) Load(accountType transaction.AccountType) (Goals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return Goals{}, err
	}

	g := Goals{
		ExpenseLimit: DefaultExpenseLimit,
		IncomeGoal:   DefaultIncomeGoal,
	}

	if raw, ok := values[expenseKey(accountType)]; ok {
		if cents, err := money.ParseDecimalToCents(raw); err == nil {
			g.ExpenseLimit = cents
		}
	}

	if raw, ok := values[incomeKey(accountType)]; ok {
		if cents, err := money.ParseDecimalToCents(raw); err == nil {
			g.IncomeGoal = cents
		}
	}

	return g, nil
}

func (s *Store) Save(accountType transaction.AccountType, g Goals) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}

	values[expenseKey(accountType)] = money.FormatAmount(g.ExpenseLimit)
	values[incomeKey(accountType)] = money.FormatAmount(g.IncomeGoal)

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding goals: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating goals directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing goals: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing goals file: %w", err)
	}

	return nil
}

func (s *Store) read() (map[string]string, error) {
	values := map[string]string{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}

		return nil, fmt.Errorf("reading goals: %w", err)
	}

	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decoding goals: %w", err)
	}

	return values, nil
}
