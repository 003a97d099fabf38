package finance_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/granahq/grana/internal/finance"
	"github.com/granahq/grana/internal/transaction"
)

func tx(title string, amount int64, typ transaction.Type, date string) *transaction.Transaction {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}

	return &transaction.Transaction{
		ID:     uuid.New(),
		Title:  title,
		Amount: amount,
		Type:   typ,
		Date:   d,
	}
}

func TestSummarize(t *testing.T) {
	txs := []*transaction.Transaction{
		tx("Salário", 500000, transaction.TypeIncome, "2024-01-15"),
		tx("Supermercado", 35000, transaction.TypeExpense, "2024-01-16"),
		tx("Freelance", 120000, transaction.TypeIncome, "2024-01-17"),
	}

	s := finance.Summarize(txs)

	assert.Equal(t, int64(620000), s.TotalIncome)
	assert.Equal(t, int64(35000), s.TotalExpense)
	assert.Equal(t, int64(585000), s.Balance)
}

func TestSummarize_Empty(t *testing.T) {
	s := finance.Summarize(nil)

	assert.Zero(t, s.TotalIncome)
	assert.Zero(t, s.TotalExpense)
	assert.Zero(t, s.Balance)
}

// balance must equal income minus expense exactly, whatever the list.
func TestSummarize_BalanceIdentity(t *testing.T) {
	lists := [][]*transaction.Transaction{
		nil,
		{tx("a", 1, transaction.TypeIncome, "2024-01-01")},
		{
			tx("a", 333, transaction.TypeIncome, "2024-01-01"),
			tx("b", 999, transaction.TypeExpense, "2024-02-01"),
			tx("c", 1, transaction.TypeExpense, "2024-03-01"),
		},
	}

	for _, txs := range lists {
		s := finance.Summarize(txs)
		assert.Equal(t, s.Balance, s.TotalIncome-s.TotalExpense)
	}
}

func TestRecent(t *testing.T) {
	var txs []*transaction.Transaction
	for i := 0; i < 8; i++ {
		txs = append(txs, tx("x", 100, transaction.TypeExpense, "2024-01-01"))
	}

	assert.Len(t, finance.Recent(txs, finance.RecentLimit), 5)
	assert.Equal(t, txs[:5], finance.Recent(txs, 5))
	assert.Len(t, finance.Recent(txs[:2], 5), 2)
	assert.Empty(t, finance.Recent(nil, 5))
}

func TestWithinRange(t *testing.T) {
	txs := []*transaction.Transaction{
		tx("jan", 100, transaction.TypeExpense, "2024-01-10"),
		tx("feb", 100, transaction.TypeExpense, "2024-02-10"),
		tx("mar", 100, transaction.TypeExpense, "2024-03-10"),
	}

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)

	got := finance.WithinRange(txs, &start, &end)
	assert.Len(t, got, 1)
	assert.Equal(t, "feb", got[0].Title)

	assert.Len(t, finance.WithinRange(txs, &start, nil), 2)
	assert.Len(t, finance.WithinRange(txs, nil, &end), 2)
	assert.Equal(t, txs, finance.WithinRange(txs, nil, nil))
}

func TestMonthlySeries(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)

	txs := []*transaction.Transaction{
		tx("salary june", 500000, transaction.TypeIncome, "2024-06-05"),
		tx("rent june", 150000, transaction.TypeExpense, "2024-06-01"),
		tx("rent may", 150000, transaction.TypeExpense, "2024-05-01"),
		tx("old", 999999, transaction.TypeExpense, "2023-11-30"), // outside window
	}

	series := finance.MonthlySeries(txs, 6, now)

	assert.Len(t, series, 6)
	assert.Equal(t, time.January, series[0].Month)
	assert.Equal(t, time.June, series[5].Month)

	assert.Equal(t, int64(500000), series[5].Income)
	assert.Equal(t, int64(150000), series[5].Expense)
	assert.Equal(t, int64(150000), series[4].Expense)

	// Empty months stay in the series with zero totals.
	assert.Zero(t, series[0].Income)
	assert.Zero(t, series[0].Expense)
}

func TestMonthlySeries_YearBoundary(t *testing.T) {
	now := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	series := finance.MonthlySeries(nil, 6, now)

	assert.Equal(t, 2023, series[0].Year)
	assert.Equal(t, time.September, series[0].Month)
	assert.Equal(t, 2024, series[5].Year)
	assert.Equal(t, time.February, series[5].Month)
}
