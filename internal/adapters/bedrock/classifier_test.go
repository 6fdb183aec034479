package bedrock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractResponseText(t *testing.T) {
	tests := []struct {
		name     string
		modelID  string
		body     string
		expected string
	}{
		{
			name:     "claude completion envelope",
			modelID:  "anthropic.claude-v2",
			body:     `{"completion": "{\"probability\": 0.9}"}`,
			expected: `{"probability": 0.9}`,
		},
		{
			name:     "titan results envelope",
			modelID:  "amazon.titan-text-express-v1",
			body:     `{"results": [{"outputText": "{\"probability\": 0.2}"}]}`,
			expected: `{"probability": 0.2}`,
		},
		{
			name:     "generic output field",
			modelID:  "meta.llama2-13b",
			body:     `{"output": "{\"probability\": 0.5}"}`,
			expected: `{"probability": 0.5}`,
		},
		{
			name:     "generic falls back to raw body",
			modelID:  "meta.llama2-13b",
			body:     `{"probability": 0.5}`,
			expected: `{"probability": 0.5}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(nil, tt.modelID, 100, 0, 4096, zap.NewNop())

			text, err := c.extractResponseText([]byte(tt.body))

			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestExtractResponseTextEmptyTitanResults(t *testing.T) {
	c := NewClassifier(nil, "amazon.titan-text-express-v1", 100, 0, 4096, zap.NewNop())

	_, err := c.extractResponseText([]byte(`{"results": []}`))

	assert.Error(t, err)
}

func TestParseProbability(t *testing.T) {
	p, err := parseProbability("Estimate follows: {\"probability\": 0.73} done")
	require.NoError(t, err)
	assert.InDelta(t, 0.73, p, 1e-9)

	_, err = parseProbability(`{"probability": 2}`)
	assert.Error(t, err)
}
