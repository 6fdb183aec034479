package static

import (
	"context"
	"fmt"
)

// Classifier returns a fixed phishing probability for every text. It backs
// tests and local development where no real model is loaded.
type Classifier struct {
	probability float64
}

// New creates a fixed-probability classifier.
func New(probability float64) (*Classifier, error) {
	if probability < 0 || probability > 1 {
		return nil, fmt.Errorf("probability must be in [0, 1], got %v", probability)
	}
	return &Classifier{probability: probability}, nil
}

// PhishProbability returns the configured probability.
func (c *Classifier) PhishProbability(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return c.probability, nil
}
