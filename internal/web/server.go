// Package web serves the dashboard pages.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gitlab.com/yelinaung/money-manager/internal/auth"
	"gitlab.com/yelinaung/money-manager/internal/database"
	"gitlab.com/yelinaung/money-manager/internal/gemini"
	"gitlab.com/yelinaung/money-manager/internal/insight"
	"gitlab.com/yelinaung/money-manager/internal/logger"
	"gitlab.com/yelinaung/money-manager/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const shutdownTimeout = 10 * time.Second

// AccountService registers and authenticates users.
type AccountService interface {
	Register(ctx context.Context, username, password, confirm string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// UserLookup resolves the user behind a session.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ExpenseStore is the expense persistence the pages need.
type ExpenseStore interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByUserID(ctx context.Context, userID string, window *models.DateRange) ([]models.Expense, error)
	GetCategorySummary(ctx context.Context, userID string, window *models.DateRange) ([]models.CategorySummary, error)
	GetCategories(ctx context.Context, userID string) ([]string, error)
}

// Analyzer produces the insight report for a set of expenses.
type Analyzer interface {
	Analyze(ctx context.Context, expenses []models.Expense) insight.Report
}

// CategorySuggester proposes a category for an uncategorized expense.
type CategorySuggester interface {
	SuggestCategory(ctx context.Context, description string, categories []string) (*gemini.CategorySuggestion, error)
}

// Deps wires the server. Suggester and Health may be nil.
type Deps struct {
	Accounts      AccountService
	Users         UserLookup
	Expenses      ExpenseStore
	Analyzer      Analyzer
	Suggester     CategorySuggester
	Health        database.Pinger
	Sessions      *auth.SessionManager
	Location      *time.Location
	SecureCookies bool
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	accounts      AccountService
	users         UserLookup
	expenses      ExpenseStore
	analyzer      Analyzer
	suggester     CategorySuggester
	health        database.Pinger
	sessions      *auth.SessionManager
	loc           *time.Location
	secureCookies bool
	pages         map[string]*template.Template
	now           func() time.Time
}

// NewServer parses the page templates and returns a Server.
func NewServer(deps Deps) (*Server, error) {
	if deps.Accounts == nil || deps.Users == nil || deps.Expenses == nil ||
		deps.Analyzer == nil || deps.Sessions == nil {
		return nil, errors.New("web: missing required dependency")
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	loc := deps.Location
	if loc == nil {
		loc = time.Local
	}

	return &Server{
		accounts:      deps.Accounts,
		users:         deps.Users,
		expenses:      deps.Expenses,
		analyzer:      deps.Analyzer,
		suggester:     deps.Suggester,
		health:        deps.Health,
		sessions:      deps.Sessions,
		loc:           loc,
		secureCookies: deps.SecureCookies,
		pages:         pages,
		now:           time.Now,
	}, nil
}

// Handler returns the routed and instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	r.Get("/healthz", s.handleHealth)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/expenses", http.StatusFound)
	})
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Post("/register", s.handleRegister)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Get("/expenses", s.requireSession(s.handleListExpenses))
		r.Get("/expenses/new", s.requireSession(s.handleNewExpenseForm))
		r.Post("/expenses/new", s.requireSession(s.handleCreateExpense))
		r.Get("/analytics", s.requireSession(s.handleAnalytics))
		r.Get("/insights", s.requireSession(s.handleInsights))
	})

	return otelhttp.NewHandler(r, "money-manager",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info().Str("addr", addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logger.Log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			logger.Log.Warn().Err(err).Msg("Health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unavailable\n"))
			return
		}
	}
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) today() time.Time {
	return models.NormalizeDate(s.now().In(s.loc), s.loc)
}
