package models

import "strings"

// SuggestedCategories is the category list offered by the add-expense form.
// Any other non-empty label is accepted as well.
var SuggestedCategories = []string{
	"Food",
	"Transportation",
	"Housing",
	"Utilities",
	"Entertainment",
	"Shopping",
	"Healthcare",
	"Other",
}

// FallbackCategory is used when no category could be determined.
const FallbackCategory = "Other"

// CanonicalCategory trims a user-supplied label and, when it equals one of
// the suggested categories ignoring case, returns the suggested spelling.
// Custom labels are otherwise kept verbatim.
func CanonicalCategory(input string) string {
	trimmed := strings.Join(strings.Fields(input), " ")
	for _, c := range SuggestedCategories {
		if strings.EqualFold(c, trimmed) {
			return c
		}
	}
	return trimmed
}

// MatchCategory finds the best matching category for a suggested category name.
// Matching strategy:
// 1. Exact match (case-insensitive)
// 2. Contains match (e.g., "transport" matches "Transportation")
// 3. Word-based match on significant words
// 4. No match -> returns "", false.
func MatchCategory(suggested string, categories []string) (string, bool) {
	suggestedLower := strings.ToLower(strings.TrimSpace(suggested))
	if suggestedLower == "" {
		return "", false
	}

	for _, c := range categories {
		if strings.EqualFold(c, suggestedLower) {
			return c, true
		}
	}

	// Shortest category name that contains the term.
	best := ""
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c), suggestedLower) {
			if best == "" || len(c) < len(best) {
				best = c
			}
		}
	}
	if best != "" {
		return best, true
	}

	// Reverse check: suggested "Food - Dining Out" matches category "Food".
	for _, c := range categories {
		if strings.Contains(suggestedLower, strings.ToLower(c)) {
			if best == "" || len(c) > len(best) {
				best = c
			}
		}
	}
	if best != "" {
		return best, true
	}

	suggestedWords := extractSignificantWords(suggested)
	for _, c := range categories {
		for _, cw := range extractSignificantWords(c) {
			for _, sw := range suggestedWords {
				if sw == cw {
					return c, true
				}
			}
		}
	}

	return "", false
}

// extractSignificantWords extracts lowercase words, filtering out separators and stop words.
func extractSignificantWords(s string) []string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", "/", " ", "&", " ").Replace(s)

	var significant []string
	for _, w := range strings.Fields(s) {
		if len(w) >= 3 && !isStopWord(w) {
			significant = append(significant, w)
		}
	}
	return significant
}

func isStopWord(word string) bool {
	switch word {
	case "and", "the", "for":
		return true
	}
	return false
}
