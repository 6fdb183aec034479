package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvidenceSingleLineTruncated(t *testing.T) {
	engine := newTestEngine(fixedClassifier(0.9), newFakeStore(), nil)
	raw := strings.Repeat("a", 400)

	decision, err := engine.Classify(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, LabelPhishing, decision.Label)
	require.Len(t, decision.Snippets, 1)
	assert.Equal(t, raw[:300], decision.Snippets[0])
}

func TestEvidenceTriggerLineSelected(t *testing.T) {
	engine := newTestEngine(fixedClassifier(0.6), newFakeStore(), []string{"verify"})
	raw := "Hello there friend\nPlease verify your login\nSee you soon"

	decision, err := engine.Classify(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, LabelSuspicious, decision.Label)
	assert.Equal(t, []string{"Please verify your login"}, decision.Snippets)
}

func TestEvidenceTokenLineSelected(t *testing.T) {
	store := newFakeStore()
	store.seed("casino777", 0, 4)
	// Safe per-line probabilities keep the classifier out of the selection.
	engine := newTestEngine(fixedClassifier(0.1), store, nil)
	raw := "Hello there friend\nTry casino777 tonight\nSee you soon"

	decision, err := engine.Classify(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, LabelPhishing, decision.Label)
	assert.Equal(t, []string{"Try casino777 tonight"}, decision.Snippets)
}

func TestEvidencePerLineClassifierSelects(t *testing.T) {
	full := "Hello there friend\nSend your password right away\nSee you soon"
	hot := Normalize("Send your password right away")
	classifier := &fakeClassifier{fn: func(text string) (float64, error) {
		switch text {
		case Normalize(full), hot:
			return 0.9, nil
		default:
			return 0.1, nil
		}
	}}
	engine := newTestEngine(classifier, newFakeStore(), nil)

	decision, err := engine.Classify(context.Background(), full)

	require.NoError(t, err)
	assert.Equal(t, LabelPhishing, decision.Label)
	assert.Equal(t, []string{"Send your password right away"}, decision.Snippets)
}

func TestEvidenceFallsBackToNewestLines(t *testing.T) {
	full := "Hello there friend\nHow are you today\nPlease send me money"
	classifier := &fakeClassifier{fn: func(text string) (float64, error) {
		if text == Normalize(full) {
			return 0.9, nil
		}
		return 0.1, nil
	}}
	engine := newTestEngine(classifier, newFakeStore(), nil)

	decision, err := engine.Classify(context.Background(), full)

	require.NoError(t, err)
	assert.Equal(t, LabelPhishing, decision.Label)
	assert.Equal(t,
		[]string{"How are you today", "Please send me money"},
		decision.Snippets)
}

func TestEvidenceLineFailureSkipsOnlyThatLine(t *testing.T) {
	full := "Hello there friend\nPlease verify your login\nSee you soon"
	classifier := &fakeClassifier{fn: func(text string) (float64, error) {
		if text == Normalize(full) {
			return 0.9, nil
		}
		return 0, errors.New("model offline")
	}}
	engine := newTestEngine(classifier, newFakeStore(), []string{"verify"})

	decision, err := engine.Classify(context.Background(), full)

	require.NoError(t, err)
	assert.Equal(t, LabelPhishing, decision.Label)
	// The trigger line never reaches the classifier; the other lines fail
	// and are dropped without failing the request.
	assert.Equal(t, []string{"Please verify your login"}, decision.Snippets)
}

func TestEvidenceSuspiciousWithoutQualifyingLines(t *testing.T) {
	full := "Hello there friend\nHow are you today\nSee you soon"
	classifier := &fakeClassifier{fn: func(text string) (float64, error) {
		if text == Normalize(full) {
			return 0.6, nil
		}
		return 0.1, nil
	}}
	engine := newTestEngine(classifier, newFakeStore(), nil)

	decision, err := engine.Classify(context.Background(), full)

	require.NoError(t, err)
	assert.Equal(t, LabelSuspicious, decision.Label)
	assert.Empty(t, decision.Snippets)
}

func TestEvidenceShortLinesIgnored(t *testing.T) {
	lines := evidenceLines("ok\nHi!\n  Please verify your login  \n\nbye")
	assert.Equal(t, []string{"Please verify your login"}, lines)
}
