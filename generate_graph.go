//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/money-manager/internal/charts"
	"gitlab.com/yelinaung/money-manager/internal/insight"
	"gitlab.com/yelinaung/money-manager/internal/models"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func main() {
	expenses := []models.Expense{
		{Amount: decimal.NewFromFloat(150.50), Category: "Food", Date: day(3)},
		{Amount: decimal.NewFromFloat(130.50), Category: "Food", Date: day(9)},
		{Amount: decimal.NewFromFloat(60.00), Category: "Transportation", Date: day(9)},
		{Amount: decimal.NewFromFloat(25.00), Category: "Entertainment", Date: day(14)},
		{Amount: decimal.NewFromFloat(120.00), Category: "Utilities", Date: day(20)},
	}

	summary := insight.Summarize(expenses)

	outputs := []struct {
		file   string
		render func() ([]byte, error)
	}{
		{"pie.png", func() ([]byte, error) { return charts.CategoryPie(summary.Breakdown, "Expenses by Category") }},
		{"bar.png", func() ([]byte, error) { return charts.CategoryBar(summary.Breakdown, "Total Amount by Category") }},
		{"trend.png", func() ([]byte, error) {
			return charts.DailyTrendLine(charts.DailyTotals(expenses), "Daily Spending Trend")
		}},
	}

	for _, o := range outputs {
		data, err := o.render()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(o.file, data, 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Created %s\n", o.file)
	}
}
