package finance_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granahq/grana/internal/finance"
	"github.com/granahq/grana/internal/transaction"
)

func categorized(amount int64, typ transaction.Type, ref *transaction.CategoryRef) *transaction.Transaction {
	t := &transaction.Transaction{
		ID:     uuid.New(),
		Title:  "x",
		Amount: amount,
		Type:   typ,
		Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	if ref != nil {
		t.CategoryID = &ref.ID
		t.Category = ref
	}

	return t
}

func TestExpenseByCategory(t *testing.T) {
	food := &transaction.CategoryRef{ID: uuid.New(), Name: "Alimentação", Color: "#EF4444"}
	transport := &transaction.CategoryRef{ID: uuid.New(), Name: "Transporte", Color: "#3B82F6"}

	txs := []*transaction.Transaction{
		categorized(10000, transaction.TypeExpense, transport),
		categorized(30000, transaction.TypeExpense, food),
		categorized(5000, transaction.TypeExpense, transport),
		categorized(99999, transaction.TypeIncome, food), // income never counts
		categorized(7000, transaction.TypeExpense, nil),  // no category, skipped
	}

	got := finance.ExpenseByCategory(txs, finance.BreakdownOptions{})

	require.Len(t, got, 2)
	assert.Equal(t, "Alimentação", got[0].Name)
	assert.Equal(t, int64(30000), got[0].Total)
	assert.Equal(t, "#EF4444", got[0].Color)
	assert.Equal(t, "Transporte", got[1].Name)
	assert.Equal(t, int64(15000), got[1].Total)
}

func TestExpenseByCategory_Orders(t *testing.T) {
	small := &transaction.CategoryRef{ID: uuid.New(), Name: "small"}
	big := &transaction.CategoryRef{ID: uuid.New(), Name: "big"}

	txs := []*transaction.Transaction{
		categorized(100, transaction.TypeExpense, small),
		categorized(90000, transaction.TypeExpense, big),
	}

	byAmount := finance.ExpenseByCategory(txs, finance.BreakdownOptions{Order: finance.ByAmount})
	assert.Equal(t, "big", byAmount[0].Name)

	byFirstSeen := finance.ExpenseByCategory(txs, finance.BreakdownOptions{Order: finance.ByFirstSeen})
	assert.Equal(t, "small", byFirstSeen[0].Name)
}

func TestExpenseByCategory_Limit(t *testing.T) {
	var txs []*transaction.Transaction
	for i := 0; i < 7; i++ {
		ref := &transaction.CategoryRef{ID: uuid.New(), Name: string(rune('a' + i))}
		txs = append(txs, categorized(int64(100*(i+1)), transaction.TypeExpense, ref))
	}

	got := finance.ExpenseByCategory(txs, finance.BreakdownOptions{})
	require.Len(t, got, 5)
	// Default keeps the largest totals.
	assert.Equal(t, int64(700), got[0].Total)

	assert.Len(t, finance.ExpenseByCategory(txs, finance.BreakdownOptions{Limit: 2}), 2)
}

func TestExpenseByCategory_Empty(t *testing.T) {
	assert.Empty(t, finance.ExpenseByCategory(nil, finance.BreakdownOptions{}))
}
