package gemini

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

type mockGenerator struct {
	mu       sync.Mutex
	response *genai.GenerateContentResponse
	err      error
	calls    int
	model    string
	prompt   string
	config   *genai.GenerateContentConfig
	ctxErr   error
}

func (m *mockGenerator) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.model = model
	m.config = config
	m.ctxErr = ctx.Err()
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		m.prompt = contents[0].Parts[0].Text
	}
	return m.response, m.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: text},
					},
				},
			},
		},
	}
}
