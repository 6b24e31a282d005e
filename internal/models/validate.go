package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidExpense is wrapped by every Expense validation failure.
var ErrInvalidExpense = errors.New("invalid expense")

// Amount failures, wrapped together with ErrInvalidExpense.
var (
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrAmountTooPrecise  = errors.New("amount must have at most 2 decimal places")
	ErrAmountTooLarge    = errors.New("amount is too large")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the record before it is persisted.
func (e *Expense) Validate() error {
	if err := validate.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidExpense, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidExpense, err)
	}

	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidExpense)
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExpense, err)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidExpense)
	}

	return nil
}

// ValidateAmount reports whether amount can be stored unchanged: positive,
// at most AmountScale decimal places and below MaxAmount.
func ValidateAmount(amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return ErrAmountNotPositive
	case !amount.Equal(amount.Round(AmountScale)):
		return ErrAmountTooPrecise
	case amount.GreaterThanOrEqual(MaxAmount):
		return ErrAmountTooLarge
	}
	return nil
}
