package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/phishguard/phishguard/internal/utils"
)

// Classifier estimates phishing probability with a Google Gemini model.
type Classifier struct {
	client      *genai.Client
	model       *genai.GenerativeModel
	modelName   string
	maxTextSize int
	logger      *zap.Logger
}

const promptFormat = `You are a phishing detection model. Estimate the probability that the
following message is a phishing attempt.
Respond with a JSON object containing a single field:
- probability: number between 0 and 1 (higher means more likely phishing)

Message:
%s

Respond only with the JSON object and nothing else.`

// NewClassifier creates a new Gemini-backed classifier.
func NewClassifier(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	maxTextSize int,
	logger *zap.Logger,
) (*Classifier, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &Classifier{
		client:      client,
		model:       model,
		modelName:   modelName,
		maxTextSize: maxTextSize,
		logger:      logger,
	}, nil
}

// Close closes the Gemini client
func (c *Classifier) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// PhishProbability asks the model for a phishing probability estimate.
func (c *Classifier) PhishProbability(ctx context.Context, text string) (float64, error) {
	prompt := fmt.Sprintf(promptFormat, utils.TruncateHead(text, c.maxTextSize))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return 0, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return 0, fmt.Errorf("empty response from Gemini")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return parseProbability(responseText)
}

// parseProbability extracts the probability from the model's JSON reply,
// tolerating prose around the JSON object.
func parseProbability(responseText string) (float64, error) {
	var parsed struct {
		Probability float64 `json:"probability"`
	}
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
