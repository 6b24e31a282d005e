package web

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/money-manager/internal/apperror"
	"gitlab.com/yelinaung/money-manager/internal/auth"
	"gitlab.com/yelinaung/money-manager/internal/logger"
	"gitlab.com/yelinaung/money-manager/internal/models"
)

const (
	msgExpenseAdded   = "Expense added successfully!"
	msgNoExpenses     = "No expenses found for the selected date range."
	msgInvalidAmount  = "Amount must be a positive number"
	msgFutureDate     = "Date cannot be in the future"
	msgMissingExpDate = "Date is required"
	msgInvalidExpDate = "Date must use the YYYY-MM-DD format"
	msgAmountPrecise  = "Amount can have at most 2 decimal places"
	msgAmountTooLarge = "Amount is too large"
)

type expenseListView struct {
	Window   windowForm
	Range    string
	Expenses []models.Expense
	Total    decimal.Decimal
}

type expenseFormView struct {
	Categories  []string
	Category    string
	Amount      string
	Description string
	Date        string
	MaxDate     string
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	window, werr := s.parseWindow(r)

	data := pageData{Title: "Expenses", Session: sess}
	status := http.StatusOK
	if werr != nil {
		if !apperror.IsValidation(werr) {
			s.renderError(w, r, sess, werr)
			return
		}
		data.Error = apperror.UserMessage(werr)
		status = http.StatusBadRequest
	}

	expenses, err := s.expenses.GetByUserID(r.Context(), sess.UserID, window)
	if err != nil {
		s.renderError(w, r, sess, err)
		return
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	if len(expenses) == 0 {
		data.Info = msgNoExpenses
	}

	data.Content = expenseListView{
		Window:   formFor(window),
		Range:    window.String(),
		Expenses: expenses,
		Total:    total,
	}
	s.render(w, status, "expenses", data)
}

func (s *Server) handleNewExpenseForm(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	categories, err := s.categoryChoices(r.Context(), sess.UserID)
	if err != nil {
		s.renderError(w, r, sess, err)
		return
	}

	today := s.today().Format(models.DateLayout)
	data := pageData{
		Title:   "Add Expense",
		Session: sess,
		Content: expenseFormView{
			Categories: categories,
			Date:       today,
			MaxDate:    today,
		},
	}
	if r.URL.Query().Get("added") == "1" {
		data.Success = msgExpenseAdded
	}
	s.render(w, http.StatusOK, "expense_new", data)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := expenseFormView{
		Category:    r.PostFormValue("category"),
		Amount:      strings.TrimSpace(r.PostFormValue("amount")),
		Description: r.PostFormValue("description"),
		Date:        strings.TrimSpace(r.PostFormValue("date")),
		MaxDate:     s.today().Format(models.DateLayout),
	}

	expense, msg := s.expenseFromForm(form)
	if msg == "" {
		expense.UserID = sess.UserID
		expense.Category = s.resolveCategory(r.Context(), sess.UserID, form.Category, expense.Description)

		err := s.expenses.Create(r.Context(), expense)
		if err == nil {
			logger.Log.Info().
				Str("user_id", logger.HashUserID(sess.UserID)).
				Str("category", expense.Category).
				Msg("Expense added")
			http.Redirect(w, r, "/expenses/new?added=1", http.StatusSeeOther)
			return
		}
		if !apperror.IsValidation(err) {
			s.renderError(w, r, sess, err)
			return
		}
		msg = apperror.UserMessage(err)
	}

	categories, err := s.categoryChoices(r.Context(), sess.UserID)
	if err != nil {
		s.renderError(w, r, sess, err)
		return
	}
	form.Categories = categories

	s.render(w, http.StatusBadRequest, "expense_new", pageData{
		Title:   "Add Expense",
		Session: sess,
		Error:   msg,
		Content: form,
	})
}

// expenseFromForm parses the amount and date fields. A non-empty message
// means the form is invalid.
func (s *Server) expenseFromForm(form expenseFormView) (*models.Expense, string) {
	amount, err := decimal.NewFromString(form.Amount)
	if err != nil {
		return nil, msgInvalidAmount
	}
	switch err := models.ValidateAmount(amount); {
	case errors.Is(err, models.ErrAmountTooPrecise):
		return nil, msgAmountPrecise
	case errors.Is(err, models.ErrAmountTooLarge):
		return nil, msgAmountTooLarge
	case err != nil:
		return nil, msgInvalidAmount
	}

	if form.Date == "" {
		return nil, msgMissingExpDate
	}
	date, err := models.ParseDate(form.Date, s.loc)
	if err != nil {
		return nil, msgInvalidExpDate
	}
	if date.After(s.today()) {
		return nil, msgFutureDate
	}

	return &models.Expense{
		Amount:      amount,
		Description: strings.TrimSpace(form.Description),
		Date:        date,
	}, ""
}

// resolveCategory canonicalizes the submitted category. A blank category is
// suggested from the description when a suggester is configured, and
// otherwise falls back to models.FallbackCategory.
func (s *Server) resolveCategory(ctx context.Context, userID, input, description string) string {
	if category := models.CanonicalCategory(input); category != "" {
		return category
	}
	if s.suggester == nil || description == "" {
		return models.FallbackCategory
	}

	choices, err := s.categoryChoices(ctx, userID)
	if err != nil {
		return models.FallbackCategory
	}

	suggestion, err := s.suggester.SuggestCategory(ctx, description, choices)
	if err != nil {
		logger.Log.Warn().
			Err(err).
			Str("user_id", logger.HashUserID(userID)).
			Msg("Category suggestion failed, using fallback")
		return models.FallbackCategory
	}
	return suggestion.Category
}

// categoryChoices is the suggested list followed by the user's own labels.
func (s *Server) categoryChoices(ctx context.Context, userID string) ([]string, error) {
	choices := slices.Clone(models.SuggestedCategories)

	used, err := s.expenses.GetCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range used {
		if !slices.Contains(choices, c) {
			choices = append(choices, c)
		}
	}
	return choices, nil
}
