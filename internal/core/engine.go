package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Probability thresholds for the tri-state mapping.
const (
	phishingThreshold   = 0.80
	suspiciousThreshold = 0.50
)

// Signature scoring constants. A token needs at least two observations to
// contribute, and the override thresholds are only reachable when essentially
// all historical observations of a token agree, so a single noisy report can
// never flip a verdict.
const (
	minObservations        = 2
	safeOverrideScore      = 1.0
	phishingOverrideScore  = -1.0
	phishLeaningStrength   = -0.1
	heuristicOverrideCount = 2
)

// Timeouts bounds the two external calls a classification makes.
type Timeouts struct {
	Classifier time.Duration
	Store      time.Duration
}

// Engine fuses the classifier, the signature store and the trigger vocabulary
// into one deterministic verdict. It holds no per-request state; the only
// cross-request state is the signature store.
type Engine struct {
	classifier Classifier
	store      SignatureStore
	triggers   *TriggerSet
	logger     *zap.Logger
	timeouts   Timeouts
}

// NewEngine creates a new decision engine.
func NewEngine(
	classifier Classifier,
	store SignatureStore,
	triggers *TriggerSet,
	logger *zap.Logger,
	timeouts Timeouts,
) *Engine {
	return &Engine{
		classifier: classifier,
		store:      store,
		triggers:   triggers,
		logger:     logger,
		timeouts:   timeouts,
	}
}

// Classify produces the verdict for one message.
//
// Precedence, first match wins:
//  1. Two or more distinct trigger words force Phishing, even over a strong
//     safe signature. The trigger vocabulary catches novel scam wording the
//     model was never trained on.
//  2. A near-unanimous safe signature overrides a classifier Phishing label.
//  3. A near-unanimous phishing signature overrides a classifier Safe label.
//  4. Otherwise the classifier's label and confidence stand.
//
// If the signature store is unreachable the engine degrades to
// classifier+trigger decisioning; if the classifier is unreachable the
// request fails.
func (e *Engine) Classify(ctx context.Context, text string) (*Decision, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	probability, err := e.classify(ctx, Normalize(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	label, base := mapProbability(probability)

	aggregate, phishTokens := e.signatureScore(ctx, text)
	scan := e.triggers.Scan(text)

	decision := &Decision{
		Label:      label,
		Confidence: fmt.Sprintf("%.2f%%", base*100),
		AnalyzedAt: time.Now(),
	}
	switch {
	case scan.Distinct >= heuristicOverrideCount:
		decision.Label = LabelPhishing
		decision.Confidence = fmt.Sprintf("95.00%% (Detected %d suspicious keywords)", scan.Occurrences)
	case aggregate >= safeOverrideScore && label == LabelPhishing:
		decision.Label = LabelSafe
		decision.Confidence = "100.00% (Trusted Signature)"
	case aggregate <= phishingOverrideScore && label == LabelSafe:
		decision.Label = LabelPhishing
		decision.Confidence = "100.00% (Known Phishing Pattern)"
	}

	decision.Keywords = append(append([]string{}, scan.Words...), phishTokens...)
	if decision.Label != LabelSafe {
		decision.Snippets = e.collectEvidence(ctx, text, decision.Label, decision.Keywords)
	}

	e.logger.Debug("Message classified",
		zap.String("label", decision.Label.String()),
		zap.Float64("probability", probability),
		zap.Float64("aggregate_score", aggregate),
		zap.Int("trigger_words", scan.Distinct))

	return decision, nil
}

// Feedback records a human report: every signature token in the text gets
// one observation on the counter named by the label. Repeated identical
// reports accumulate without bound.
func (e *Engine) Feedback(ctx context.Context, text, label string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidInput
	}

	var safe bool
	switch label {
	case FeedbackLabelSafe:
		safe = true
	case FeedbackLabelPhishing:
		safe = false
	default:
		return fmt.Errorf("%w: unknown feedback label %q", ErrInvalidInput, label)
	}

	tokens := ExtractTokens(text)
	for _, token := range tokens {
		if err := e.increment(ctx, token, safe); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	e.logger.Info("Feedback recorded",
		zap.String("label", label),
		zap.Int("tokens", len(tokens)))
	return nil
}

func (e *Engine) classify(ctx context.Context, normalized string) (float64, error) {
	if e.timeouts.Classifier > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeouts.Classifier)
		defer cancel()
	}
	return e.classifier.PhishProbability(ctx, normalized)
}

func (e *Engine) increment(ctx context.Context, token string, safe bool) error {
	if e.timeouts.Store > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeouts.Store)
		defer cancel()
	}
	return e.store.Increment(ctx, token, safe)
}

// signatureScore looks up the message's signature tokens and folds them into
// an aggregate score plus the phishing-leaning tokens shown to the caller.
// A store failure degrades to (0, nil) and logs instead of failing the
// request.
func (e *Engine) signatureScore(ctx context.Context, text string) (float64, []string) {
	tokens := ExtractTokens(text)
	if len(tokens) == 0 {
		return 0, nil
	}

	if e.timeouts.Store > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeouts.Store)
		defer cancel()
	}
	records, err := e.store.LookupMany(ctx, tokens)
	if err != nil {
		e.logger.Warn("Signature lookup failed, degrading to classifier and triggers",
			zap.Error(err),
			zap.Int("tokens", len(tokens)))
		return 0, nil
	}

	var aggregate float64
	var phishTokens []string
	for _, record := range records {
		if record.Total() < minObservations {
			continue
		}
		strength := record.Strength()
		aggregate += strength
		if strength < phishLeaningStrength {
			phishTokens = append(phishTokens, record.Token)
		}
	}
	return aggregate, phishTokens
}

// mapProbability applies the fixed tri-state thresholds and returns the label
// with its base confidence.
func mapProbability(p float64) (Label, float64) {
	switch {
	case p >= phishingThreshold:
		return LabelPhishing, p
	case p >= suspiciousThreshold:
		return LabelSuspicious, p
	default:
		return LabelSafe, 1 - p
	}
}
