package core

import (
	"context"
)

// Classifier wraps the pretrained phishing probability model. The engine
// never trains or inspects the model; it only consumes the probability.
type Classifier interface {
	// PhishProbability returns the probability in [0, 1] that the given
	// normalized text is phishing.
	PhishProbability(ctx context.Context, text string) (float64, error)
}

// SignatureStore is the concurrent token counter store fed by feedback.
type SignatureStore interface {
	// Increment atomically creates the record for token if absent and
	// increments its safe or phish counter by one. Concurrent increments
	// to the same token must never lose an update.
	Increment(ctx context.Context, token string, safe bool) error

	// LookupMany returns the records for the tokens that are present in
	// the store. Absent tokens are omitted from the result.
	LookupMany(ctx context.Context, tokens []string) ([]SignatureRecord, error)
}
