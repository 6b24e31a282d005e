package web

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/money-manager/internal/apperror"
	"gitlab.com/yelinaung/money-manager/internal/auth"
	"gitlab.com/yelinaung/money-manager/internal/logger"
	"gitlab.com/yelinaung/money-manager/internal/models"
)

var pageNames = []string{
	"login",
	"expenses",
	"expense_new",
	"analytics",
	"insights",
	"error",
}

var templateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"date": func(t time.Time) string {
		return t.Format(models.DateLayout)
	},
	"pngURI": func(png []byte) template.URL {
		//nolint:gosec // base64 PNG bytes produced by the chart renderer
		return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	},
}

// pageData is shared by every page. Content carries the page-specific view.
type pageData struct {
	Title   string
	Session *auth.Session
	Success string
	Error   string
	Warning string
	Info    string
	Content any
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("base.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// render executes a page into a buffer first so a template failure never
// leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	tmpl, ok := s.pages[name]
	if !ok {
		logger.Log.Error().Str("template", name).Msg("Unknown template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		logger.Log.Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError shows the error page with a message safe for users.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, sess *auth.Session, err error) {
	status := http.StatusInternalServerError
	if appErr, ok := apperror.As(err); ok {
		status = appErr.StatusCode()
	}

	event := logger.Log.Error()
	if status < http.StatusInternalServerError {
		event = logger.Log.Warn()
	}
	event.Err(err).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("Request failed")

	s.render(w, status, "error", pageData{
		Title:   "Error",
		Session: sess,
		Error:   apperror.UserMessage(err),
	})
}
