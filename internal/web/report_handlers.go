package web

import (
	"errors"
	"net/http"

	"gitlab.com/yelinaung/money-manager/internal/apperror"
	"gitlab.com/yelinaung/money-manager/internal/auth"
	"gitlab.com/yelinaung/money-manager/internal/charts"
	"gitlab.com/yelinaung/money-manager/internal/insight"
	"gitlab.com/yelinaung/money-manager/internal/logger"
)

const (
	msgNoAnalyticsData = "No data available for the selected date range."
	msgAddForInsights  = "Add some expenses to get AI-powered insights!"
)

type analyticsView struct {
	Window  windowForm
	Range   string
	Summary *insight.Summary
	Pie     []byte
	Bar     []byte
}

type insightsView struct {
	Window    windowForm
	Range     string
	Summary   *insight.Summary
	Narrative string
	Trend     []byte
	Pie       []byte
	Hint      string
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	window, werr := s.parseWindow(r)

	data := pageData{Title: "Analytics", Session: sess}
	status := http.StatusOK
	if werr != nil {
		if !apperror.IsValidation(werr) {
			s.renderError(w, r, sess, werr)
			return
		}
		data.Error = apperror.UserMessage(werr)
		status = http.StatusBadRequest
	}

	rows, err := s.expenses.GetCategorySummary(r.Context(), sess.UserID, window)
	if err != nil {
		s.renderError(w, r, sess, err)
		return
	}

	view := analyticsView{
		Window:  formFor(window),
		Range:   window.String(),
		Summary: insight.FromCategorySummaries(rows),
	}
	if view.Summary == nil {
		data.Info = msgNoAnalyticsData
	} else {
		view.Pie = chartOrNil(charts.CategoryPie(rows, "Expenses by Category"))
		view.Bar = chartOrNil(charts.CategoryBar(rows, "Total Amount by Category"))
	}

	data.Content = view
	s.render(w, status, "analytics", data)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	window, werr := s.parseWindow(r)

	data := pageData{Title: "AI Insights", Session: sess}
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

	report := s.analyzer.Analyze(r.Context(), expenses)

	view := insightsView{
		Window:  formFor(window),
		Range:   window.String(),
		Summary: report.Summary,
	}
	switch {
	case report.Summary == nil:
		data.Info = report.Narrative.Display()
		view.Hint = msgAddForInsights
	case report.Narrative.OK():
		view.Narrative = report.Narrative.Text
	default:
		data.Warning = report.Narrative.Display()
	}

	if report.Summary != nil {
		view.Trend = chartOrNil(charts.DailyTrendLine(charts.DailyTotals(expenses), "Daily Spending Trend"))
		view.Pie = chartOrNil(charts.CategoryPie(report.Summary.Breakdown, "Expenses by Category"))
	}

	data.Content = view
	s.render(w, status, "insights", data)
}

// chartOrNil drops a chart that failed to render. Pages still show the tables.
func chartOrNil(png []byte, err error) []byte {
	if err != nil {
		if !errors.Is(err, charts.ErrNoData) {
			logger.Log.Warn().Err(err).Msg("Failed to render chart")
		}
		return nil
	}
	return png
}
