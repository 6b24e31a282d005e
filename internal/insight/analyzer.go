package insight

import (
	"context"
	"errors"

	"gitlab.com/yelinaung/money-manager/internal/logger"
	"gitlab.com/yelinaung/money-manager/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "gitlab.com/yelinaung/money-manager/internal/insight"

// NoDataMessage is shown instead of a narrative when there is nothing to analyze.
const NoDataMessage = "No expenses data available for analysis."

// ErrorPrefix starts every displayed generation failure.
const ErrorPrefix = "Error generating AI analysis: "

// ErrNotConfigured is reported when no generator is available.
var ErrNotConfigured = errors.New("AI insights are not configured")

// Generator produces narrative text from a prompt.
type Generator interface {
	GenerateInsight(ctx context.Context, prompt string) (string, error)
}

// Narrative is either generated text or the error that prevented it.
type Narrative struct {
	Text string
	Err  error
}

// OK reports whether the narrative holds text rather than an error.
func (n Narrative) OK() bool {
	return n.Err == nil
}

// Display returns the text to show a user.
func (n Narrative) Display() string {
	if n.Err != nil {
		return ErrorPrefix + n.Err.Error()
	}
	return n.Text
}

// Report is the outcome of one analysis.
type Report struct {
	// Summary is nil when there were no expenses.
	Summary   *Summary
	Narrative Narrative
}

// Analyzer summarizes expenses and asks a Generator to narrate them.
type Analyzer struct {
	gen      Generator
	tracer   trace.Tracer
	requests metric.Int64Counter
}

// NewAnalyzer creates an Analyzer. A nil gen yields ErrNotConfigured narratives.
func NewAnalyzer(gen Generator) *Analyzer {
	requests, err := otel.Meter(instrumentationName).Int64Counter(
		"insight.requests",
		metric.WithDescription("Insight generation attempts by outcome"),
	)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to create insight counter")
		requests = noop.Int64Counter{}
	}

	return &Analyzer{
		gen:      gen,
		tracer:   otel.Tracer(instrumentationName),
		requests: requests,
	}
}

// Analyze summarizes expenses and generates a narrative with one generator call.
// Empty input returns NoDataMessage without calling the generator.
// Generation failures are returned inside the Narrative, never as panics.
func (a *Analyzer) Analyze(ctx context.Context, expenses []models.Expense) Report {
	ctx, span := a.tracer.Start(ctx, "insight.Analyze")
	defer span.End()

	span.SetAttributes(attribute.Int("expense.count", len(expenses)))

	summary := Summarize(expenses)
	if summary == nil {
		a.record(ctx, "no_data")
		return Report{Narrative: Narrative{Text: NoDataMessage}}
	}
	span.SetAttributes(attribute.Int("category.count", len(summary.Breakdown)))

	report := Report{Summary: summary}

	if a.gen == nil {
		report.Narrative = Narrative{Err: ErrNotConfigured}
		a.record(ctx, "disabled")
		return report
	}

	text, err := a.gen.GenerateInsight(ctx, BuildPrompt(summary))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insight generation failed")
		logger.Log.Warn().Err(err).
			Int("categories", len(summary.Breakdown)).
			Msg("Insight generation failed")
		report.Narrative = Narrative{Err: err}
		a.record(ctx, "error")
		return report
	}

	report.Narrative = Narrative{Text: text}
	a.record(ctx, "ok")
	return report
}

func (a *Analyzer) record(ctx context.Context, outcome string) {
	a.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
