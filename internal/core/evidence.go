package core

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/utils"
)

const (
	snippetMaxBytes = 300
	// Lines this short carry no evidence worth surfacing.
	minEvidenceLineLength = 3
	// Number of trailing lines returned by the recency fallback. In a
	// conversational stream the newest content is the most likely place
	// for the injected attack.
	fallbackLineCount = 2
)

// collectEvidence selects the text snippets that support a non-Safe verdict.
// Each qualifying line is re-analyzed independently; a failure evaluating one
// line excludes only that line.
func (e *Engine) collectEvidence(ctx context.Context, raw string, label Label, keywords []string) []string {
	lines := evidenceLines(raw)

	if len(lines) <= 1 && label == LabelPhishing {
		return []string{utils.TruncateHead(raw, snippetMaxBytes)}
	}

	matched := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		matched[strings.ToLower(kw)] = struct{}{}
	}

	var snippets []string
	for _, line := range lines {
		qualifies, err := e.lineQualifies(ctx, line, matched)
		if err != nil {
			e.logger.Debug("Evidence line evaluation failed, skipping line", zap.Error(err))
			continue
		}
		if qualifies {
			snippets = append(snippets, line)
		}
	}
	if len(snippets) > 0 || label != LabelPhishing {
		return snippets
	}

	// Phishing verdict with no qualifying line: fall back to the newest
	// content, or the tail of the raw text when there are no lines at all.
	tail := nonEmptyLines(raw)
	if len(tail) == 0 {
		return []string{utils.TruncateTail(raw, snippetMaxBytes)}
	}
	if len(tail) > fallbackLineCount {
		tail = tail[len(tail)-fallbackLineCount:]
	}
	return tail
}

// lineQualifies reports whether a single line supports the verdict: it shares
// a token with the whole-message matches, contains a trigger word, or the
// classifier flags the line alone as phishing.
func (e *Engine) lineQualifies(ctx context.Context, line string, matched map[string]struct{}) (bool, error) {
	for _, token := range ExtractTokens(line) {
		if _, ok := matched[token]; ok {
			return true, nil
		}
	}
	if e.triggers.Scan(line).Distinct > 0 {
		return true, nil
	}

	probability, err := e.classify(ctx, Normalize(line))
	if err != nil {
		return false, err
	}
	return probability >= phishingThreshold, nil
}

// evidenceLines splits raw text into trimmed lines, discarding the ones too
// short to be meaningful evidence.
func evidenceLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= minEvidenceLineLength {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// nonEmptyLines returns every non-empty trimmed line in original order.
func nonEmptyLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
