package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/granahq/grana/internal/finance"
	"github.com/granahq/grana/internal/transaction"
)

type Service struct {
	transactions *transaction.Service
}

func NewService(transactions *transaction.Service) *Service {
	return &Service{transactions: transactions}
}

// Export assembles the report data for one user and account scope and
// writes the PDF to w, returning the suggested filename.
func (s *Service) Export(ctx context.Context, userID uuid.UUID, accountType transaction.AccountType, w io.Writer) (string, error) {
	txs, err := s.transactions.List(ctx, transaction.ListFilter{
		UserID:      userID,
		AccountType: accountType,
	})
	if err != nil {
		return "", fmt.Errorf("listing transactions: %w", err)
	}

	now := time.Now()

	data := Data{
		AccountType:  accountType,
		GeneratedAt:  now,
		Summary:      finance.Summarize(txs),
		Transactions: finance.Recent(txs, recentLimit),
		Series:       finance.MonthlySeries(txs, seriesMonths, now),
		Breakdown:    finance.ExpenseByCategory(txs, finance.BreakdownOptions{}),
	}

	if err := Render(w, data); err != nil {
		return "", err
	}

	return Filename(accountType, now), nil
}
