package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/utils"
)

// Classifier estimates phishing probability with an OpenAI chat model.
type Classifier struct {
	client      *openai.Client
	modelName   string
	maxTokens   int
	temperature float32
	maxTextSize int
	logger      *zap.Logger
}

// probabilityResponse is the structured response requested from the model.
type probabilityResponse struct {
	Probability float64 `json:"probability"`
}

const promptFormat = `You are a phishing detection model. Estimate the probability that the
following message is a phishing attempt.
Respond with a JSON object containing a single field:
- probability: number between 0 and 1 (higher means more likely phishing)

Message:
%s

Respond only with the JSON object and nothing else.`

// NewClassifier creates a new OpenAI-backed classifier.
func NewClassifier(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	maxTextSize int,
	logger *zap.Logger,
) *Classifier {
	return &Classifier{
		client:      client,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		maxTextSize: maxTextSize,
		logger:      logger,
	}
}

// PhishProbability asks the model for a phishing probability estimate.
func (c *Classifier) PhishProbability(ctx context.Context, text string) (float64, error) {
	prompt := fmt.Sprintf(promptFormat, utils.TruncateHead(text, c.maxTextSize))

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a phishing detection model. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: "json"}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("empty response from OpenAI")
	}

	return parseProbability(resp.Choices[0].Message.Content)
}

// parseProbability extracts the probability from the model's JSON reply,
// tolerating prose around the JSON object.
func parseProbability(responseText string) (float64, error) {
	var parsed probabilityResponse
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		start := strings.IndexByte(responseText, '{')
		end := strings.LastIndexByte(responseText, '}')
		if start < 0 || end <= start {
			return 0, fmt.Errorf("failed to extract JSON from model response: %w", err)
		}
		if err := json.Unmarshal([]byte(responseText[start:end+1]), &parsed); err != nil {
			return 0, fmt.Errorf("failed to parse model response as JSON: %w", err)
		}
	}
	if parsed.Probability < 0 || parsed.Probability > 1 {
		return 0, fmt.Errorf("model returned probability outside [0, 1]: %v", parsed.Probability)
	}
	return parsed.Probability, nil
}
