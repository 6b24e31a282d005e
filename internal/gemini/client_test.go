package gemini

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/money-manager/internal/logger"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("empty API key returns error", func(t *testing.T) {
		t.Parallel()
		client, err := NewClient(context.Background(), "")
		require.Error(t, err)
		require.Nil(t, client)
		require.Contains(t, err.Error(), "API key is required")
	})

	t.Run("non-empty key creates client", func(t *testing.T) {
		t.Parallel()
		client, err := NewClient(context.Background(), "test-api-key")
		require.NoError(t, err)
		require.True(t, client.ready())
	})
}

func TestClient_Ready(t *testing.T) {
	t.Parallel()

	var nilClient *Client
	require.False(t, nilClient.ready())
	require.False(t, NewClientWithGenerator(nil).ready())
	require.True(t, NewClientWithGenerator(&mockGenerator{}).ready())
}

func TestWithModel(t *testing.T) {
	t.Parallel()

	require.Equal(t, ModelName, NewClientWithGenerator(&mockGenerator{}).Model())
	require.Equal(t, ModelName, NewClientWithGenerator(&mockGenerator{}, WithModel("")).Model())

	mock := &mockGenerator{response: textResponse("ok")}
	client := NewClientWithGenerator(mock, WithModel("gemini-2.5-pro"))
	require.Equal(t, "gemini-2.5-pro", client.Model())

	_, err := client.GenerateInsight(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "gemini-2.5-pro", mock.model)
}

func TestGenerateTextNilResponse(t *testing.T) {
	t.Parallel()

	client := NewClientWithGenerator(&mockGenerator{})
	_, err := client.generateText(context.Background(), "test", "prompt", nil)
	require.EqualError(t, err, "no response from Gemini")
}

func TestClientLogsAreTaggedWithComponent(t *testing.T) {
	saved := logger.Log
	t.Cleanup(func() {
		logger.Log = saved
		logger.SetLevel("debug")
	})

	var buf bytes.Buffer
	logger.Setup(&buf, logger.FormatJSON, "debug")

	client := NewClientWithGenerator(&mockGenerator{err: errors.New("unavailable")})
	_, err := client.GenerateInsight(context.Background(), "prompt")
	require.Error(t, err)

	require.Contains(t, buf.String(), `"component":"gemini"`)
	require.Contains(t, buf.String(), `"op":"GenerateInsight"`)
}
