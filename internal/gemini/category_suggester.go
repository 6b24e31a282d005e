package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gitlab.com/yelinaung/money-manager/internal/models"
	"google.golang.org/genai"
)

// suggestTimeout bounds one category suggestion call.
const suggestTimeout = 10 * time.Second

// ErrUnknownCategory is returned when the model proposes a category outside the offered list.
var ErrUnknownCategory = errors.New("suggested category not in available categories")

// CategorySuggestion represents a suggested category for an expense description.
type CategorySuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// SuggestCategory asks Gemini which of availableCategories best fits description.
// The answer is matched against the sanitized names offered to the model and
// then mapped back by position onto availableCategories.
func (c *Client) SuggestCategory(ctx context.Context, description string, availableCategories []string) (*CategorySuggestion, error) {
	descHash := hashDescription(description)
	log := c.componentLog().With().Str("description_hash", descHash).Logger()

	if !c.ready() {
		log.Error().Msg("SuggestCategory: gemini client not initialized")
		return nil, ErrNotInitialized
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("description is required")
	}
	if len(availableCategories) == 0 {
		return nil, fmt.Errorf("no categories available")
	}

	sanitized := make([]string, len(availableCategories))
	for i, cat := range availableCategories {
		sanitized[i] = SanitizeCategoryName(cat)
	}
	prompt := buildCategorySuggestionPrompt(sanitizeDescription(description), sanitized)

	timeoutCtx, cancel := context.WithTimeout(ctx, suggestTimeout)
	defer cancel()

	temp := float32(0.3)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(300),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: "You are a JSON API. Respond with ONLY one valid JSON object."},
			},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"category": {
					Type:        genai.TypeString,
					Enum:        sanitized,
					Description: "The most appropriate category from the provided list",
				},
				"confidence": {
					Type:        genai.TypeNumber,
					Description: "Confidence score between 0 and 1",
				},
				"reasoning": {
					Type:        genai.TypeString,
					Description: "Brief explanation for the categorization",
				},
			},
			Required: []string{"category", "confidence", "reasoning"},
		},
	}

	fullText, err := c.generateText(timeoutCtx, "SuggestCategory", prompt, config)
	if err != nil {
		return nil, err
	}

	jsonText := extractJSON(fullText)
	if jsonText == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var suggestion CategorySuggestion
	if err := json.Unmarshal([]byte(jsonText), &suggestion); err != nil {
		log.Error().Err(err).Msg("SuggestCategory: failed to parse JSON response")
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	matched, ok := models.MatchCategory(suggestion.Category, sanitized)
	if !ok {
		log.Warn().
			Str("suggested_category", SanitizeCategoryName(suggestion.Category)).
			Msg("SuggestCategory: suggested category not in available list")
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, SanitizeCategoryName(suggestion.Category))
	}
	suggestion.Category = availableCategories[slices.Index(sanitized, matched)]

	if suggestion.Confidence < 0.0 || suggestion.Confidence > 1.0 {
		return nil, fmt.Errorf("confidence out of range: %f", suggestion.Confidence)
	}

	suggestion.Reasoning = sanitizeReasoning(suggestion.Reasoning)

	log.Debug().
		Str("category", suggestion.Category).
		Float64("confidence", suggestion.Confidence).
		Msg("SuggestCategory: matched category")

	return &suggestion, nil
}

func buildCategorySuggestionPrompt(description string, categories []string) string {
	return fmt.Sprintf(`Categorize this personal expense: "%s"

Available categories:
- %s

Rules:
- Choose the MOST appropriate category from the list
- "Transportation" for taxi, ride hailing, bus, train, fuel
- "Housing" for rent, mortgage, repairs; "Utilities" for power, water, internet, phone
- Use "Other" only when nothing else fits
- Higher confidence (0.8-1.0) for obvious categories, lower (0.5-0.7) for ambiguous ones

Return JSON only:
{"category": "exact category name", "confidence": 0.0-1.0, "reasoning": "brief explanation"}`,
		description, strings.Join(categories, "\n- "))
}

// extractJSON returns the outermost {...} span of text.
// Gemini sometimes adds preamble even with a JSON response type.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	end := strings.LastIndex(text, "}")
	if end == -1 || end <= start {
		return ""
	}

	return text[start : end+1]
}

// SanitizeForPrompt strips characters that could break prompt structure,
// collapses whitespace, and truncates to maxLength bytes.
func SanitizeForPrompt(input string, maxLength int) string {
	input = strings.ReplaceAll(input, `"`, `'`)
	input = strings.ReplaceAll(input, "`", "'")
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.Join(strings.Fields(input), " ")

	if len(input) > maxLength {
		input = strings.TrimSpace(input[:maxLength])
	}

	return input
}

// SanitizeCategoryName sanitizes a category name for embedding in prompts.
func SanitizeCategoryName(name string) string {
	return SanitizeForPrompt(name, models.MaxCategoryNameLength)
}

func sanitizeDescription(description string) string {
	return SanitizeForPrompt(description, models.MaxDescriptionLength)
}

func sanitizeReasoning(reasoning string) string {
	reasoning = strings.Join(strings.Fields(reasoning), " ")

	const maxReasoningLength = 500
	if len(reasoning) > maxReasoningLength {
		reasoning = strings.TrimSpace(reasoning[:maxReasoningLength])
	}

	return reasoning
}

// hashDescription creates a short SHA256 digest of the description for logging.
func hashDescription(description string) string {
	hash := sha256.Sum256([]byte(description))
	return hex.EncodeToString(hash[:8])
}
