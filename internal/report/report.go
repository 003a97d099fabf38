// Package report renders a financial summary PDF for one account scope:
// totals, the latest transactions, a monthly expense bar chart and an
// expense-by-category pie chart.
package report

import (
	"fmt"
	"time"

	"github.com/granahq/grana/internal/finance"
	"github.com/granahq/grana/internal/transaction"
)

// recentLimit caps the transaction table in the PDF.
const recentLimit = 10

// seriesMonths is the trailing window shown in the bar chart.
const seriesMonths = 6

// Data is everything the renderer needs, pre-computed by the service.
type Data struct {
	AccountType  transaction.AccountType
	GeneratedAt  time.Time
	Summary      finance.Summary
	Transactions []*transaction.Transaction
	Series       []finance.MonthPoint
	Breakdown    []finance.CategorySlice
}

// Filename builds the download name, e.g. "relatorio-personal-2026-01-31.pdf".
func Filename(accountType transaction.AccountType, date time.Time) string {
	return fmt.Sprintf("relatorio-%s-%s.pdf", accountType, date.Format(time.DateOnly))
}

func accountLabel(accountType transaction.AccountType) string {
	if accountType == transaction.AccountBusiness {
		return "Empresarial"
	}

	return "Pessoal"
}
