package finance

import (
	"sort"

	"github.com/google/uuid"

	"github.com/granahq/grana/internal/transaction"
)

// BreakdownOrder selects how the breakdown is truncated to its top entries.
type BreakdownOrder int

const (
	// ByAmount keeps the categories with the highest spend.
	ByAmount BreakdownOrder = iota
	// ByFirstSeen keeps categories in the order they first appear in the
	// list. This reproduces the behavior of the original dashboard, which
	// truncated before sorting.
	ByFirstSeen
)

// BreakdownOptions configures ExpenseByCategory. The zero value keeps the
// top 5 categories by spend.
type BreakdownOptions struct {
	Limit int
	Order BreakdownOrder
}

// CategorySlice is one category's share of total expenses.
type CategorySlice struct {
	CategoryID uuid.UUID
	Name       string
	Color      string
	Total      int64
}

// ExpenseByCategory groups expense transactions by their category, carrying
// the category's display name and color through. Transactions without a
// category (including orphaned references) are skipped.
func ExpenseByCategory(txs []*transaction.Transaction, opts BreakdownOptions) []CategorySlice {
	limit := opts.Limit
	if limit == 0 {
		limit = 5
	}

	var (
		slices []CategorySlice
		index  = map[uuid.UUID]int{}
	)

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense || tx.Category == nil {
			continue
		}

		i, ok := index[tx.Category.ID]
		if !ok {
			i = len(slices)
			index[tx.Category.ID] = i
			slices = append(slices, CategorySlice{
				CategoryID: tx.Category.ID,
				Name:       tx.Category.Name,
				Color:      tx.Category.Color,
			})
		}

		slices[i].Total += tx.Amount
	}

	if opts.Order == ByAmount {
		sort.SliceStable(slices, func(i, j int) bool {
			return slices[i].Total > slices[j].Total
		})
	}

	if len(slices) > limit {
		slices = slices[:limit]
	}

	return slices
}
