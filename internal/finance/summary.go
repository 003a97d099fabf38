// Package finance computes presentation aggregates over an in-memory
// transaction list that is already scoped to one user and account type.
// Everything here is a pure function; amounts stay in int64 cents so sums
// are exact.
package finance

import (
	"time"

	"github.com/granahq/grana/internal/transaction"
)

// RecentLimit is how many transactions the dashboard shows.
const RecentLimit = 5

// Summary holds the headline aggregates for a transaction list.
type Summary struct {
	TotalIncome  int64
	TotalExpense int64
	Balance      int64
}

// Summarize computes income/expense totals and their difference.
// An empty or nil list yields the zero Summary.
func Summarize(txs []*transaction.Transaction) Summary {
	var s Summary

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			s.TotalIncome += tx.Amount
		case transaction.TypeExpense:
			s.TotalExpense += tx.Amount
		}
	}

	s.Balance = s.TotalIncome - s.TotalExpense

	return s
}

// Recent returns the first n transactions. The input is assumed to be sorted
// descending by creation time, which is how the stores list them.
func Recent(txs []*transaction.Transaction, n int) []*transaction.Transaction {
	if n > len(txs) {
		n = len(txs)
	}

	return txs[:n]
}

// WithinRange keeps transactions whose date falls inside the optional bounds.
// Nil bounds are open; both ends are inclusive on the calendar day.
func WithinRange(txs []*transaction.Transaction, start, end *time.Time) []*transaction.Transaction {
	if start == nil && end == nil {
		return txs
	}

	var out []*transaction.Transaction

	for _, tx := range txs {
		if start != nil && tx.Date.Before(*start) {
			continue
		}

		if end != nil && tx.Date.After(*end) {
			continue
		}

		out = append(out, tx)
	}

	return out
}
