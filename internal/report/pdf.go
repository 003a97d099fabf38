package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/granahq/grana/internal/dateutil"
	"github.com/granahq/grana/internal/money"
	"github.com/granahq/grana/internal/transaction"
)

// Render writes the PDF to w. The first page carries the summary and the
// latest transactions; charts get a second page when there is data to plot.
func Render(w io.Writer, data Data) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate the pt-BR strings on the way in.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr("Relatório Financeiro "+accountLabel(data.AccountType)), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Relatório Financeiro "+accountLabel(data.AccountType)), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, tr("Gerado em "+dateutil.FormatBrazilian(data.GeneratedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	writeSummary(pdf, tr, data)
	writeTransactions(pdf, tr, data.Transactions)

	if err := writeCharts(pdf, tr, data); err != nil {
		return err
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}

	return nil
}

func writeSummary(pdf *fpdf.Fpdf, tr func(string) string, data Data) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr("Resumo"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)

	summaryLine(pdf, tr, "Total de Receitas", money.FormatBRL(data.Summary.TotalIncome), 22, 130, 93)
	summaryLine(pdf, tr, "Total de Despesas", money.FormatBRL(data.Summary.TotalExpense), 200, 55, 55)

	r, g, b := 22, 130, 93
	if data.Summary.Balance < 0 {
		r, g, b = 200, 55, 55
	}

	summaryLine(pdf, tr, "Saldo", money.FormatBRL(data.Summary.Balance), r, g, b)
	pdf.Ln(6)
}

func summaryLine(pdf *fpdf.Fpdf, tr func(string) string, label, value string, r, g, b int) {
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(60, 7, tr(label), "", 0, "L", false, 0, "")
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
}

func writeTransactions(pdf *fpdf.Fpdf, tr func(string) string, txs []*transaction.Transaction) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr("Últimas Transações"), "", 1, "L", false, 0, "")

	if len(txs) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 7, tr("Nenhuma transação no período."), "", 1, "L", false, 0, "")
		return
	}

	widths := []float64{24, 60, 40, 26, 40}
	headers := []string{"Data", "Título", "Categoria", "Tipo", "Valor"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}

	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)

	for _, tx := range txs {
		category := "-"
		if tx.Category != nil {
			category = tx.Category.Name
		}

		kind := "Receita"
		amount := money.FormatBRL(tx.Amount)

		if tx.Type == transaction.TypeExpense {
			kind = "Despesa"
			amount = "-" + amount
		}

		pdf.CellFormat(widths[0], 7, dateutil.FormatBrazilian(tx.Date), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, tr(clip(tx.Title, 34)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, tr(clip(category, 22)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, tr(kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 7, tr(amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}

func writeCharts(pdf *fpdf.Fpdf, tr func(string) string, data Data) error {
	barPNG, err := monthlyExpenseChart(data.Series)
	if err != nil {
		return fmt.Errorf("rendering monthly chart: %w", err)
	}

	piePNG, err := categoryPieChart(data.Breakdown)
	if err != nil {
		return fmt.Errorf("rendering category chart: %w", err)
	}

	if barPNG == nil && piePNG == nil {
		return nil
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr("Gráficos"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}

	if barPNG != nil {
		pdf.RegisterImageOptionsReader("monthly-expenses", opts, bytes.NewReader(barPNG))
		pdf.ImageOptions("monthly-expenses", 15, pdf.GetY(), 180, 0, true, opts, 0, "")
		pdf.Ln(4)
	}

	if piePNG != nil {
		pdf.RegisterImageOptionsReader("category-breakdown", opts, bytes.NewReader(piePNG))
		pdf.ImageOptions("category-breakdown", 55, pdf.GetY(), 100, 0, true, opts, 0, "")
	}

	return nil
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n-1]) + "…"
}
