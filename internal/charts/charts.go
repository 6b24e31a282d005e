// Package charts renders spending charts as PNG images.
package charts

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/money-manager/internal/models"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

// DailyTotal is the amount spent on one calendar day.
type DailyTotal struct {
	Day   time.Time
	Total decimal.Decimal
}

// CategoryPie creates a pie chart of spending by category.
func CategoryPie(rows []models.CategorySummary, title string) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	values, names := categorySeries(rows)

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pie chart: %w", err)
	}

	return render(p)
}

// CategoryBar creates a bar chart comparing category totals.
func CategoryBar(rows []models.CategorySummary, title string) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	values, names := categorySeries(rows)

	p, err := charts.BarRender(
		[][]float64{values},
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.XAxisLabelsOptionFunc(names),
		charts.LegendLabelsOptionFunc([]string{"Total Amount"}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bar chart: %w", err)
	}

	return render(p)
}

// DailyTrendLine creates a line chart of spending per day.
func DailyTrendLine(points []DailyTotal, title string) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	values := make([]float64, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		values[i] = pt.Total.InexactFloat64()
		labels[i] = pt.Day.Format(models.DateLayout)
	}

	p, err := charts.LineRender(
		[][]float64{values},
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.XAxisLabelsOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Amount"}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create line chart: %w", err)
	}

	return render(p)
}

// DailyTotals sums expenses per calendar day, oldest first.
// Days without spending are omitted.
func DailyTotals(expenses []models.Expense) []DailyTotal {
	byDay := make(map[time.Time]decimal.Decimal)
	for _, e := range expenses {
		day := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, e.Date.Location())
		byDay[day] = byDay[day].Add(e.Amount)
	}

	points := make([]DailyTotal, 0, len(byDay))
	for day, total := range byDay {
		points = append(points, DailyTotal{Day: day, Total: total})
	}
	slices.SortFunc(points, func(a, b DailyTotal) int {
		return a.Day.Compare(b.Day)
	})
	return points
}

func categorySeries(rows []models.CategorySummary) ([]float64, []string) {
	values := make([]float64, len(rows))
	names := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row.Total.InexactFloat64()
		names[i] = row.Category
	}
	return values, names
}

func render(p *charts.Painter) ([]byte, error) {
	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}
