package goal_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granahq/grana/internal/goal"
	"github.com/granahq/grana/internal/transaction"
)

func newService(t *testing.T) (*goal.Service, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "goals.json")

	return goal.NewService(goal.NewStore(path)), path
}

func TestService_DefaultsWhenUnset(t *testing.T) {
	svc, _ := newService(t)

	g, err := svc.Get(transaction.AccountPersonal)

	require.NoError(t, err)
	assert.Equal(t, int64(goal.DefaultExpenseLimit), g.ExpenseLimit)
	assert.Equal(t, int64(goal.DefaultIncomeGoal), g.IncomeGoal)
}

func TestService_SetGetRoundTrip(t *testing.T) {
	svc, _ := newService(t)

	want := goal.Goals{ExpenseLimit: 2500_00, IncomeGoal: 7000_00}
	require.NoError(t, svc.Set(transaction.AccountBusiness, want))

	got, err := svc.Get(transaction.AccountBusiness)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The other account type keeps its own values.
	personal, err := svc.Get(transaction.AccountPersonal)
	require.NoError(t, err)
	assert.Equal(t, int64(goal.DefaultExpenseLimit), personal.ExpenseLimit)
}

// Values land in the file as string-encoded decimals under per-account keys.
func TestStore_FileFormat(t *testing.T) {
	svc, path := newService(t)

	require.NoError(t, svc.Set(transaction.AccountPersonal, goal.Goals{ExpenseLimit: 2000_00, IncomeGoal: 5000_50}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var values map[string]string
	require.NoError(t, json.Unmarshal(data, &values))

	assert.Equal(t, "2000.00", values["monthly-goal-personal"])
	assert.Equal(t, "5000.50", values["monthly-income-goal-personal"])
}

func TestService_RejectsNonPositive(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Set(transaction.AccountPersonal, goal.Goals{ExpenseLimit: 0, IncomeGoal: 100})
	assert.ErrorIs(t, err, goal.ErrInvalidGoal)

	err = svc.Set(transaction.AccountPersonal, goal.Goals{ExpenseLimit: 100, IncomeGoal: -5})
	assert.ErrorIs(t, err, goal.ErrInvalidGoal)
}

func TestService_InvalidAccountType(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Get("joint")
	assert.ErrorIs(t, err, transaction.ErrInvalidAccount)
}

func TestGoals_Progress(t *testing.T) {
	g := goal.Goals{ExpenseLimit: 1000_00, IncomeGoal: 2000_00}

	incomePct, expensePct := g.Progress(1000_00, 750_00)
	assert.InDelta(t, 50.0, incomePct, 0.001)
	assert.InDelta(t, 75.0, expensePct, 0.001)

	// Capped at 100.
	incomePct, expensePct = g.Progress(9999_00, 9999_00)
	assert.Equal(t, 100.0, incomePct)
	assert.Equal(t, 100.0, expensePct)
}
