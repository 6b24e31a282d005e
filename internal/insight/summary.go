// Package insight turns raw expenses into a statistical summary, the prompt
// sent to the language model, and the resulting narrative.
package insight

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/money-manager/internal/models"
)

// TopCategoryCount is how many categories the prompt highlights.
const TopCategoryCount = 3

// Summary is the aggregate view of a set of expenses.
type Summary struct {
	Total decimal.Decimal
	// Breakdown has one row per category, ordered by category name.
	Breakdown []models.CategorySummary
	// Top holds up to TopCategoryCount rows by total, largest first.
	// Equal totals keep Breakdown order.
	Top []models.CategorySummary
	// Count is the number of expenses summarized.
	Count int
}

// Summarize aggregates expenses. It returns nil for empty input.
func Summarize(expenses []models.Expense) *Summary {
	if len(expenses) == 0 {
		return nil
	}

	byCategory := make(map[string]*models.CategorySummary)
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
		row, ok := byCategory[e.Category]
		if !ok {
			row = &models.CategorySummary{Category: e.Category}
			byCategory[e.Category] = row
		}
		row.Total = row.Total.Add(e.Amount)
		row.Count++
	}

	breakdown := make([]models.CategorySummary, 0, len(byCategory))
	for _, row := range byCategory {
		breakdown = append(breakdown, *row)
	}
	slices.SortFunc(breakdown, func(a, b models.CategorySummary) int {
		return cmp.Compare(a.Category, b.Category)
	})

	return &Summary{
		Total:     total,
		Breakdown: breakdown,
		Top:       topCategories(breakdown, TopCategoryCount),
		Count:     len(expenses),
	}
}

func topCategories(breakdown []models.CategorySummary, n int) []models.CategorySummary {
	top := slices.Clone(breakdown)
	slices.SortStableFunc(top, func(a, b models.CategorySummary) int {
		return b.Total.Cmp(a.Total)
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// FromCategorySummaries builds a Summary from rows already aggregated by the store.
func FromCategorySummaries(rows []models.CategorySummary) *Summary {
	if len(rows) == 0 {
		return nil
	}

	breakdown := slices.Clone(rows)
	slices.SortFunc(breakdown, func(a, b models.CategorySummary) int {
		return cmp.Compare(a.Category, b.Category)
	})

	total := decimal.Zero
	count := 0
	for _, row := range breakdown {
		total = total.Add(row.Total)
		count += int(row.Count)
	}

	return &Summary{
		Total:     total,
		Breakdown: breakdown,
		Top:       topCategories(breakdown, TopCategoryCount),
		Count:     count,
	}
}
