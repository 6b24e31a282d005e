package insight

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"unicode"

	"gitlab.com/yelinaung/money-manager/internal/models"
)

var promptInstructions = []string{
	"Key observations about spending patterns",
	"Specific suggestions for potential savings",
	"Budget recommendations",
	"Any concerning patterns that should be addressed",
	"Positive financial habits observed",
}

// BuildPrompt renders the advisor prompt for a summary.
// Category names are user input and are sanitized before inclusion.
func BuildPrompt(s *Summary) string {
	var b strings.Builder

	b.WriteString("As a financial advisor, analyze this expense data and provide insights and suggestions:\n\n")
	fmt.Fprintf(&b, "Total Spent: $%s\n\n", s.Total.StringFixed(2))

	b.WriteString("Top 3 Spending Categories:\n")
	writeTable(&b, s.Top)
	b.WriteString("\n")

	b.WriteString("Full Category Breakdown:\n")
	writeTable(&b, s.Breakdown)
	b.WriteString("\n")

	b.WriteString("Please provide:\n")
	for i, item := range promptInstructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	b.WriteString("\nFormat the response in clear sections with bullet points where appropriate.\n")

	return b.String()
}

func writeTable(b *strings.Builder, rows []models.CategorySummary) {
	w := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "category\tsum\tcount")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%d\n", sanitizeLabel(row.Category), row.Total.StringFixed(2), row.Count)
	}
	_ = w.Flush()
}

// sanitizeLabel keeps a category name on one line with no control or tab
// characters and caps its length.
func sanitizeLabel(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	runes := []rune(cleaned)
	if len(runes) > models.MaxCategoryNameLength {
		cleaned = string(runes[:models.MaxCategoryNameLength])
	}
	if cleaned == "" {
		return "(blank)"
	}
	return cleaned
}
