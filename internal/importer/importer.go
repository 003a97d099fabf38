// Package importer parses CSV statement exports into transaction create
// parameters. The format is loose on purpose: Brazilian bank exports differ
// in delimiter, header names and surrounding noise rows, so the parser
// scans for a recognizable header and skips anything it cannot read as a
// data row.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/granahq/grana/internal/money"
	"github.com/granahq/grana/internal/transaction"
)

var ErrNoHeader = errors.New("no recognizable header row in file")

// Column name aliases, lowercased. Title falls back to the description
// column when the export has a single free-text field.
var (
	dateAliases   = []string{"data", "date", "data mov."}
	titleAliases  = []string{"título", "titulo", "title", "histórico", "historico"}
	descAliases   = []string{"descrição", "descricao", "description", "detalhes"}
	amountAliases = []string{"valor", "montante", "amount"}
)

var dateLayouts = []string{"02/01/2006", "2006-01-02", "02-01-2006"}

type columns struct {
	date   int
	title  int
	desc   int
	amount int
}

type Importer struct{}

func New() *Importer {
	return &Importer{}
}

// Parse reads a statement and returns create params scoped to the given
// account type. Negative amounts become expenses, positive become income;
// stored amounts are always absolute. Rows before the header and rows that
// do not parse as data (footers, balances) are skipped.
func (i *Importer) Parse(accountType transaction.AccountType, r io.Reader) ([]transaction.CreateParams, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.Comma = ','

	rows, err := readAllSniffingDelimiter(reader)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	var (
		cols  columns
		found bool
		txs   []transaction.CreateParams
	)

	for _, row := range rows {
		if !found {
			if c, ok := matchHeader(row); ok {
				cols = c
				found = true
			}

			continue
		}

		params, ok := parseRow(cols, row, accountType)
		if !ok {
			continue
		}

		txs = append(txs, params)
	}

	if !found {
		return nil, ErrNoHeader
	}

	return txs, nil
}

// readAllSniffingDelimiter tries comma first and retries with semicolon
// when the file reads as one-column rows.
func readAllSniffingDelimiter(reader *csv.Reader) ([][]string, error) {
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if len(row) > 1 {
			return rows, nil
		}
	}

	// Single-column throughout: rebuild from the raw lines with ';'.
	var lines []string
	for _, row := range rows {
		if len(row) > 0 {
			lines = append(lines, row[0])
		}
	}

	semi := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	semi.Comma = ';'
	semi.FieldsPerRecord = -1
	semi.LazyQuotes = true

	return semi.ReadAll()
}

// matchHeader maps column indices when a row carries at least a date and an
// amount column.
func matchHeader(row []string) (columns, bool) {
	cols := columns{date: -1, title: -1, desc: -1, amount: -1}

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))

		switch {
		case contains(dateAliases, name):
			cols.date = i
		case contains(titleAliases, name):
			cols.title = i
		case contains(descAliases, name):
			cols.desc = i
		case contains(amountAliases, name):
			cols.amount = i
		}
	}

	if cols.date == -1 || cols.amount == -1 {
		return columns{}, false
	}

	if cols.title == -1 {
		cols.title = cols.desc
		cols.desc = -1
	}

	return cols, cols.title != -1
}

func parseRow(cols columns, row []string, accountType transaction.AccountType) (transaction.CreateParams, bool) {
	maxIdx := max(cols.date, max(cols.title, cols.amount))
	if cols.desc > maxIdx {
		maxIdx = cols.desc
	}

	if len(row) <= maxIdx {
		return transaction.CreateParams{}, false
	}

	date, ok := parseDate(strings.TrimSpace(row[cols.date]))
	if !ok {
		return transaction.CreateParams{}, false
	}

	title := strings.TrimSpace(row[cols.title])
	if title == "" {
		return transaction.CreateParams{}, false
	}

	amount, txType, err := parseSignedAmount(strings.TrimSpace(row[cols.amount]))
	if err != nil {
		return transaction.CreateParams{}, false
	}

	desc := ""
	if cols.desc != -1 {
		desc = strings.TrimSpace(row[cols.desc])
	}

	return transaction.CreateParams{
		Title:       title,
		Description: desc,
		Amount:      amount,
		Type:        txType,
		AccountType: accountType,
		Date:        date,
	}, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}

	return time.Time{}, false
}

// parseSignedAmount splits the sign off and parses the magnitude. The sign
// decides the transaction type; a zero amount is rejected.
func parseSignedAmount(s string) (int64, transaction.Type, error) {
	txType := transaction.TypeIncome

	if rest, ok := strings.CutPrefix(s, "-"); ok {
		txType = transaction.TypeExpense
		s = rest
	} else {
		s = strings.TrimPrefix(s, "+")
	}

	cents, err := money.ParseDecimalToCents(normalizeAmount(s))
	if err != nil {
		return 0, "", err
	}

	return cents, txType, nil
}

// normalizeAmount strips thousand separators. When both '.' and ',' appear
// the last one is the decimal separator, so "1.234,56" becomes "1234,56" and
// "1,234.56" becomes "1234.56".
func normalizeAmount(s string) string {
	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")

	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		return strings.ReplaceAll(s, ".", "")
	case dot >= 0 && comma >= 0:
		return strings.ReplaceAll(s, ",", "")
	default:
		return s
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}

	return false
}
