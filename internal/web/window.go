package web

import (
	"errors"
	"net/http"
	"strings"

	"gitlab.com/yelinaung/money-manager/internal/apperror"
	"gitlab.com/yelinaung/money-manager/internal/models"
)

const (
	msgInvalidDate   = "Dates must use the YYYY-MM-DD format"
	msgInvertedRange = "End date must be on or after the start date"
)

// windowForm echoes the date inputs back into the filter form.
type windowForm struct {
	Start string
	End   string
}

// parseWindow reads ?start=&end=. Missing bounds fall back to the default
// window. Malformed or inverted input yields a ValidationError together with
// the default window so the page can still render.
func (s *Server) parseWindow(r *http.Request) (*models.DateRange, error) {
	def := models.DefaultDateRange(s.now(), s.loc)

	q := r.URL.Query()
	startStr := strings.TrimSpace(q.Get("start"))
	endStr := strings.TrimSpace(q.Get("end"))

	start, end := def.Start, def.End
	if startStr != "" {
		t, err := models.ParseDate(startStr, s.loc)
		if err != nil {
			return def, apperror.NewValidationError(msgInvalidDate, err)
		}
		start = t
	}
	if endStr != "" {
		t, err := models.ParseDate(endStr, s.loc)
		if err != nil {
			return def, apperror.NewValidationError(msgInvalidDate, err)
		}
		end = t
	}

	window, err := models.NewDateRange(start, end, s.loc)
	if errors.Is(err, models.ErrInvertedRange) {
		return def, apperror.NewValidationError(msgInvertedRange, err)
	}
	if err != nil {
		return def, err
	}
	return window, nil
}

func formFor(window *models.DateRange) windowForm {
	return windowForm{
		Start: window.Start.Format(models.DateLayout),
		End:   window.End.Format(models.DateLayout),
	}
}
