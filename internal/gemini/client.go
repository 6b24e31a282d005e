// Package gemini talks to the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"gitlab.com/yelinaung/money-manager/internal/logger"
)

// ModelName is the default model for insights and category suggestions.
const ModelName = "gemini-2.5-flash"

const instrumentationName = "gitlab.com/yelinaung/money-manager/internal/gemini"

// ErrNotInitialized is returned by methods called on a client without a generator.
var ErrNotInitialized = errors.New("gemini client not initialized")

// ContentGenerator is the slice of the genai API the client uses.
// Tests substitute a fake.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

type modelsAdapter struct {
	models *genai.Models
}

func (m *modelsAdapter) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	resp, err := m.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("genai.GenerateContent: %w", err)
	}
	return resp, nil
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides ModelName. Empty names are ignored.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// Client generates insight narratives and category suggestions.
type Client struct {
	generator ContentGenerator
	model     string
	tracer    trace.Tracer
	log       zerolog.Logger
}

// NewClient connects to the Gemini API with apiKey.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return NewClientWithGenerator(&modelsAdapter{models: client.Models}, opts...), nil
}

// NewClientWithGenerator builds a Client around an existing generator.
func NewClientWithGenerator(generator ContentGenerator, opts ...Option) *Client {
	c := &Client{
		generator: generator,
		model:     ModelName,
		tracer:    otel.Tracer(instrumentationName),
		log:       logger.Component("gemini"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// componentLog is safe on a nil Client.
func (c *Client) componentLog() zerolog.Logger {
	if c == nil {
		return logger.Component("gemini")
	}
	return c.log
}

func (c *Client) ready() bool {
	return c != nil && c.generator != nil
}

// generateText sends one user prompt and returns the response text.
// Nil responses and empty text are errors.
func (c *Client) generateText(
	ctx context.Context,
	op string,
	prompt string,
	config *genai.GenerateContentConfig,
) (string, error) {
	ctx, span := c.tracer.Start(ctx, "gemini."+op, trace.WithAttributes(
		attribute.String("gemini.model", c.model),
		attribute.Int("gemini.prompt_chars", len(prompt)),
	))
	defer span.End()

	start := time.Now()
	resp, err := c.generator.GenerateContent(ctx, c.model, userContent(prompt), config)
	elapsed := time.Since(start)

	fail := func(err error) (string, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	if err != nil {
		c.log.Error().Err(err).
			Str("op", op).
			Dur("elapsed", elapsed).
			Msg("Gemini API call failed")
		return fail(fmt.Errorf("gemini API call failed: %w", err))
	}
	if resp == nil {
		return fail(errors.New("no response from Gemini"))
	}

	text := resp.Text()
	if text == "" {
		c.log.Warn().Str("op", op).Msg("No text content in Gemini response")
		return fail(errors.New("no text content in response"))
	}

	span.SetAttributes(attribute.Int("gemini.response_chars", len(text)))
	c.log.Debug().
		Str("op", op).
		Int("response_chars", len(text)).
		Dur("elapsed", elapsed).
		Msg("Received Gemini response")

	return text, nil
}

func userContent(prompt string) []*genai.Content {
	return []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
}
