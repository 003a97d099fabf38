package report

import (
	"bytes"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/granahq/grana/internal/finance"
)

// monthlyExpenseChart renders the trailing months as a bar chart PNG.
// Returns nil when there is nothing to plot; go-chart cannot render an
// empty or all-zero value range.
func monthlyExpenseChart(series []finance.MonthPoint) ([]byte, error) {
	bars := make([]chart.Value, 0, len(series))
	total := int64(0)

	for _, p := range series {
		total += p.Expense
		bars = append(bars, chart.Value{
			Label: p.Label(),
			Value: float64(p.Expense) / 100.0,
		})
	}

	if len(bars) == 0 || total == 0 {
		return nil, nil
	}

	graph := chart.BarChart{
		Title:    "Despesas por mês",
		Width:    900,
		Height:   400,
		BarWidth: 70,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// categoryPieChart renders the expense breakdown as a pie chart PNG, using
// each category's own color. Returns nil when there are no slices.
func categoryPieChart(slices []finance.CategorySlice) ([]byte, error) {
	values := make([]chart.Value, 0, len(slices))

	for _, s := range slices {
		v := chart.Value{
			Label: s.Name,
			Value: float64(s.Total) / 100.0,
		}

		if hex := strings.TrimPrefix(s.Color, "#"); len(hex) == 6 {
			color := drawing.ColorFromHex(hex)
			v.Style = chart.Style{FillColor: color, StrokeColor: color.WithAlpha(255)}
		}

		values = append(values, v)
	}

	if len(values) == 0 {
		return nil, nil
	}

	graph := chart.PieChart{
		Title:  "Despesas por categoria",
		Width:  500,
		Height: 500,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
