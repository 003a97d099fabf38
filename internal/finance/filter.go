package finance

import (
	"strings"

	"github.com/google/uuid"

	"github.com/granahq/grana/internal/transaction"
)

// Filter is the client-side view filter for the transaction table: free-text
// search, a type filter, and a category filter. Zero values mean "all", so
// the zero Filter passes everything through unchanged.
type Filter struct {
	Search     string
	Type       transaction.Type // empty means all
	CategoryID *uuid.UUID       // nil means all
}

// Matches reports whether all three predicates pass for tx.
// The search term matches case-insensitively against title and description.
func (f Filter) Matches(tx *transaction.Transaction) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(tx.Title), term) &&
			!strings.Contains(strings.ToLower(tx.Description), term) {
			return false
		}
	}

	if f.Type != "" && tx.Type != f.Type {
		return false
	}

	if f.CategoryID != nil {
		if tx.CategoryID == nil || *tx.CategoryID != *f.CategoryID {
			return false
		}
	}

	return true
}

// Apply returns the transactions that pass the filter, preserving order.
func (f Filter) Apply(txs []*transaction.Transaction) []*transaction.Transaction {
	if f.Search == "" && f.Type == "" && f.CategoryID == nil {
		return txs
	}

	out := make([]*transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}

	return out
}
