package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gitlab.com/yelinaung/money-manager/internal/apperror"
	"gitlab.com/yelinaung/money-manager/internal/database"
	"gitlab.com/yelinaung/money-manager/internal/models"
)

// ExpenseRepository handles expense database operations.
// Dates are normalized to midnight in loc on write and returned in loc on read.
type ExpenseRepository struct {
	db  database.PGXDB
	loc *time.Location
}

// NewExpenseRepository creates a new ExpenseRepository. A nil loc means time.Local.
func NewExpenseRepository(db database.PGXDB, loc *time.Location) *ExpenseRepository {
	if loc == nil {
		loc = time.Local
	}
	return &ExpenseRepository{db: db, loc: loc}
}

// Location returns the timezone used for calendar dates.
func (r *ExpenseRepository) Location() *time.Location {
	return r.loc
}

// Create validates and inserts an expense. ID and CreatedAt are filled in.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	expense.Category = strings.TrimSpace(expense.Category)
	expense.Description = strings.TrimSpace(expense.Description)
	if !expense.Date.IsZero() {
		expense.Date = models.NormalizeDate(expense.Date, r.loc)
	}

	if err := expense.Validate(); err != nil {
		return apperror.NewValidationError(err.Error(), err)
	}

	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	expense.Amount = expense.Amount.Round(models.AmountScale)
	expense.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx, `
		INSERT INTO expenses (id, user_id, amount, category, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, expense.ID, expense.UserID, expense.Amount, expense.Category,
		expense.Description, expense.Date, expense.CreatedAt)
	if err != nil {
		return apperror.NewStorageError("failed to create expense", err)
	}
	return nil
}

// GetByUserID retrieves a user's expenses, newest date first.
// A nil window returns the full history.
func (r *ExpenseRepository) GetByUserID(
	ctx context.Context,
	userID string,
	window *models.DateRange,
) ([]models.Expense, error) {
	query := `
		SELECT id, user_id, amount, category, description, date, created_at
		FROM expenses
		WHERE user_id = $1`
	args := []any{userID}
	if window != nil {
		query += ` AND date >= $2 AND date < $3`
		args = append(args, window.Lower(), window.Upper())
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewStorageError("failed to query expenses", err)
	}
	defer rows.Close()

	expenses, err := r.scanExpenses(rows)
	if err != nil {
		return nil, apperror.NewStorageError("failed to read expenses", err)
	}
	return expenses, nil
}

// GetCategorySummary aggregates a user's expenses per category, ordered by category name.
// A nil window aggregates the full history.
func (r *ExpenseRepository) GetCategorySummary(
	ctx context.Context,
	userID string,
	window *models.DateRange,
) ([]models.CategorySummary, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
		FROM expenses
		WHERE user_id = $1`
	args := []any{userID}
	if window != nil {
		query += ` AND date >= $2 AND date < $3`
		args = append(args, window.Lower(), window.Upper())
	}
	query += ` GROUP BY category ORDER BY category`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewStorageError("failed to query category summary", err)
	}
	defer rows.Close()

	var summaries []models.CategorySummary
	for rows.Next() {
		var s models.CategorySummary
		if err := rows.Scan(&s.Category, &s.Total, &s.Count); err != nil {
			return nil, apperror.NewStorageError("failed to scan category summary", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStorageError("error iterating category summary", err)
	}
	return summaries, nil
}

// GetCategories returns the distinct categories a user has recorded, alphabetically.
func (r *ExpenseRepository) GetCategories(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT category FROM expenses WHERE user_id = $1 ORDER BY category
	`, userID)
	if err != nil {
		return nil, apperror.NewStorageError("failed to query categories", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperror.NewStorageError("failed to scan category", err)
		}
		categories = append(categories, name)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStorageError("error iterating categories", err)
	}
	return categories, nil
}

// scanExpenses reads expense rows and converts dates into the repository timezone.
func (r *ExpenseRepository) scanExpenses(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
},
) ([]models.Expense, error) {
	var expenses []models.Expense
	for rows.Next() {
		var exp models.Expense
		if err := rows.Scan(
			&exp.ID, &exp.UserID, &exp.Amount, &exp.Category,
			&exp.Description, &exp.Date, &exp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		exp.Date = exp.Date.In(r.loc)
		exp.CreatedAt = exp.CreatedAt.UTC()
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}
