package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validExpense() *Expense {
	return &Expense{
		UserID:      uuid.NewString(),
		Amount:      decimal.RequireFromString("12.50"),
		Category:    "Food",
		Description: "Lunch",
		Date:        time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestExpense_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(e *Expense)
		wantErr string
	}{
		{name: "valid expense", mutate: func(*Expense) {}},
		{name: "empty description is fine", mutate: func(e *Expense) { e.Description = "" }},
		{name: "missing user", mutate: func(e *Expense) { e.UserID = "" }, wantErr: "UserID"},
		{name: "malformed user id", mutate: func(e *Expense) { e.UserID = "42" }, wantErr: "UserID"},
		{name: "missing category", mutate: func(e *Expense) { e.Category = "" }, wantErr: "Category"},
		{name: "blank category", mutate: func(e *Expense) { e.Category = "   " }, wantErr: "category is required"},
		{name: "category too long", mutate: func(e *Expense) { e.Category = strings.Repeat("x", 51) }, wantErr: "Category"},
		{name: "description too long", mutate: func(e *Expense) { e.Description = strings.Repeat("x", 201) }, wantErr: "Description"},
		{name: "zero amount", mutate: func(e *Expense) { e.Amount = decimal.Zero }, wantErr: "amount must be positive"},
		{name: "negative amount", mutate: func(e *Expense) { e.Amount = decimal.RequireFromString("-1") }, wantErr: "amount must be positive"},
		{name: "trailing zeros are fine", mutate: func(e *Expense) { e.Amount = decimal.RequireFromString("3.5000") }},
		{name: "sub-cent amount", mutate: func(e *Expense) { e.Amount = decimal.RequireFromString("0.004") }, wantErr: "at most 2 decimal places"},
		{name: "three decimals", mutate: func(e *Expense) { e.Amount = decimal.RequireFromString("12.345") }, wantErr: "at most 2 decimal places"},
		{name: "largest storable amount", mutate: func(e *Expense) { e.Amount = decimal.RequireFromString("9999999999.99") }},
		{name: "amount overflows column", mutate: func(e *Expense) { e.Amount = decimal.RequireFromString("10000000000") }, wantErr: "amount is too large"},
		{name: "missing date", mutate: func(e *Expense) { e.Date = time.Time{} }, wantErr: "date is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := validExpense()
			tt.mutate(e)

			err := e.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidExpense)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateAmount(decimal.RequireFromString("0.01")))
	require.ErrorIs(t, ValidateAmount(decimal.Zero), ErrAmountNotPositive)
	require.ErrorIs(t, ValidateAmount(decimal.RequireFromString("0.004")), ErrAmountTooPrecise)
	require.ErrorIs(t, ValidateAmount(MaxAmount), ErrAmountTooLarge)
}
