package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granahq/grana/internal/importer"
	"github.com/granahq/grana/internal/transaction"
)

func TestImporter_Parse(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		wantLen int
		verify  func(t *testing.T, txs []transaction.CreateParams)
		wantErr error
	}

	tests := []testCase{
		{
			name: "comma separated with title and description",
			input: "Data,Título,Descrição,Valor\n" +
				"05/01/2026,Salário,Pagamento mensal,5000.00\n" +
				"07/01/2026,Supermercado,,-350.00\n",
			wantLen: 2,
			verify: func(t *testing.T, txs []transaction.CreateParams) {
				assert.Equal(t, "Salário", txs[0].Title)
				assert.Equal(t, "Pagamento mensal", txs[0].Description)
				assert.Equal(t, int64(500000), txs[0].Amount)
				assert.Equal(t, transaction.TypeIncome, txs[0].Type)
				assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), txs[0].Date)

				assert.Equal(t, "Supermercado", txs[1].Title)
				assert.Equal(t, int64(35000), txs[1].Amount)
				assert.Equal(t, transaction.TypeExpense, txs[1].Type)
			},
		},
		{
			name: "semicolon separated with european amounts",
			input: "Data;Descrição;Montante\n" +
				"05-01-2026;Aluguel;-1.200,00\n" +
				"10-01-2026;Freelance;2.500,50\n",
			wantLen: 2,
			verify: func(t *testing.T, txs []transaction.CreateParams) {
				// Single free-text column doubles as the title.
				assert.Equal(t, "Aluguel", txs[0].Title)
				assert.Empty(t, txs[0].Description)
				assert.Equal(t, int64(120000), txs[0].Amount)
				assert.Equal(t, transaction.TypeExpense, txs[0].Type)

				assert.Equal(t, int64(250050), txs[1].Amount)
				assert.Equal(t, transaction.TypeIncome, txs[1].Type)
			},
		},
		{
			name: "noise rows before header and footer after data",
			input: "Extrato de conta\n" +
				"Cliente,JOANA SILVA\n" +
				"Data,Título,Valor\n" +
				"2026-01-05,Salário,5000.00\n" +
				"Saldo final,,\n",
			wantLen: 1,
			verify: func(t *testing.T, txs []transaction.CreateParams) {
				assert.Equal(t, "Salário", txs[0].Title)
				assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), txs[0].Date)
			},
		},
		{
			name: "rows with bad amounts are skipped",
			input: "Data,Título,Valor\n" +
				"05/01/2026,Salário,5000.00\n" +
				"06/01/2026,Estorno,0.00\n" +
				"07/01/2026,Texto,abc\n",
			wantLen: 1,
		},
		{
			name:    "no header",
			input:   "isto não é um extrato\nsó texto\n",
			wantErr: importer.ErrNoHeader,
		},
		{
			name:    "header only yields empty list",
			input:   "Data,Título,Valor\n",
			wantLen: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			txs, err := importer.New().Parse(transaction.AccountPersonal, strings.NewReader(tc.input))

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, txs, tc.wantLen)

			for _, tx := range txs {
				assert.Equal(t, transaction.AccountPersonal, tx.AccountType)
			}

			if tc.verify != nil {
				tc.verify(t, txs)
			}
		})
	}
}

func TestService_Import_Windows1252(t *testing.T) {
	// "Data,Título,Valor\n05/01/2026,Salário,5000.00\n" with í and á in
	// Windows-1252 (0xED, 0xE1).
	raw := []byte("Data,T\xedtulo,Valor\n05/01/2026,Sal\xe1rio,5000.00\n")

	txs, err := importer.NewService().Import(transaction.AccountBusiness, strings.NewReader(string(raw)))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "Salário", txs[0].Title)
	assert.Equal(t, transaction.AccountBusiness, txs[0].AccountType)
}
