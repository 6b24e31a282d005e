// Package models defines the domain entities for the expense tracker.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxUsernameLength is the maximum allowed length for usernames.
const MaxUsernameLength = 64

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// MaxDescriptionLength is the maximum allowed length for expense descriptions.
const MaxDescriptionLength = 200

// AmountScale is the number of decimal places stored for an amount.
const AmountScale = 2

// MaxAmount is the smallest amount that no longer fits NUMERIC(12,2).
var MaxAmount = decimal.New(1, 10)

// User is a registered account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Expense is a single recorded spending event owned by one user.
// Date is a calendar date stored at local midnight; CreatedAt is the UTC audit instant.
type Expense struct {
	ID          string          `validate:"omitempty,uuid"`
	UserID      string          `validate:"required,uuid"`
	Amount      decimal.Decimal `validate:"-"`
	Category    string          `validate:"required,max=50"`
	Description string          `validate:"max=200"`
	Date        time.Time       `validate:"-"`
	CreatedAt   time.Time       `validate:"-"`
}

// CategorySummary is one row of a per-category aggregation within a window.
type CategorySummary struct {
	Category string
	Total    decimal.Decimal
	Count    int64
}
