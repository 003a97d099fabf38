package finance

import (
	"time"

	"github.com/granahq/grana/internal/transaction"
)

// MonthPoint is one month's income and expense totals.
type MonthPoint struct {
	Year    int
	Month   time.Month
	Income  int64
	Expense int64
}

// Label renders the point as "Jan/2024" style for chart axes.
func (p MonthPoint) Label() string {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan/2006")
}

// MonthlySeries buckets transactions into the trailing `months` calendar
// months ending at now's month, oldest first. Months with no transactions
// appear with zero totals so charts keep a stable axis. Matching is by
// calendar year+month of the transaction date, in the date's own location.
func MonthlySeries(txs []*transaction.Transaction, months int, now time.Time) []MonthPoint {
	if months <= 0 {
		return nil
	}

	type key struct {
		year  int
		month time.Month
	}

	points := make([]MonthPoint, months)
	index := make(map[key]int, months)

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)

	for i := 0; i < months; i++ {
		m := first.AddDate(0, i, 0)
		points[i] = MonthPoint{Year: m.Year(), Month: m.Month()}
		index[key{m.Year(), m.Month()}] = i
	}

	for _, tx := range txs {
		i, ok := index[key{tx.Date.Year(), tx.Date.Month()}]
		if !ok {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			points[i].Income += tx.Amount
		case transaction.TypeExpense:
			points[i].Expense += tx.Amount
		}
	}

	return points
}
