package report_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/granahq/grana/internal/finance"
	"github.com/granahq/grana/internal/report"
	"github.com/granahq/grana/internal/transaction"
)

func TestFilename(t *testing.T) {
	date := time.Date(2026, 1, 31, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "relatorio-personal-2026-01-31.pdf", report.Filename(transaction.AccountPersonal, date))
	assert.Equal(t, "relatorio-business-2026-01-31.pdf", report.Filename(transaction.AccountBusiness, date))
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer

	err := report.Render(&buf, report.Data{
		AccountType: transaction.AccountPersonal,
		GeneratedAt: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRender_WithData(t *testing.T) {
	catID := uuid.New()
	txs := []*transaction.Transaction{
		{
			Title:  "Salário",
			Amount: 500000,
			Type:   transaction.TypeIncome,
			Date:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:      "Aluguel",
			Amount:     120000,
			Type:       transaction.TypeExpense,
			Date:       time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
			CategoryID: &catID,
			Category:   &transaction.CategoryRef{ID: catID, Name: "Moradia", Color: "#3b82f6"},
		},
	}

	now := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer

	err := report.Render(&buf, report.Data{
		AccountType:  transaction.AccountBusiness,
		GeneratedAt:  now,
		Summary:      finance.Summarize(txs),
		Transactions: txs,
		Series:       finance.MonthlySeries(txs, 6, now),
		Breakdown:    finance.ExpenseByCategory(txs, finance.BreakdownOptions{}),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	// Charts add a second page on top of the summary page.
	assert.Greater(t, buf.Len(), 10_000)
}

func TestService_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	userID := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{UserID: userID, AccountType: transaction.AccountPersonal}).
		Return([]*transaction.Transaction{
			{Title: "Salário", Amount: 500000, Type: transaction.TypeIncome, Date: time.Now()},
		}, nil)

	svc := report.NewService(transaction.NewService(repo))

	var buf bytes.Buffer

	filename, err := svc.Export(context.Background(), userID, transaction.AccountPersonal, &buf)
	require.NoError(t, err)

	assert.Equal(t, report.Filename(transaction.AccountPersonal, time.Now()), filename)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
