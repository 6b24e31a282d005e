package gemini

import (
	"context"
	"fmt"
)

// GenerateInsight sends a prepared analysis prompt and returns the model's text verbatim.
// The call is made once with the caller's context.
func (c *Client) GenerateInsight(ctx context.Context, prompt string) (string, error) {
	if !c.ready() {
		return "", ErrNotInitialized
	}
	if prompt == "" {
		return "", fmt.Errorf("prompt is required")
	}
	return c.generateText(ctx, "GenerateInsight", prompt, nil)
}
