package core

import (
	"strings"
)

// TriggerSet is a fixed vocabulary of surface-form phishing trigger words.
// The list is configuration, not algorithm.
type TriggerSet struct {
	words []string
}

// NewTriggerSet builds a trigger set from the configured vocabulary.
// Words are lowercased and deduplicated; empty entries are dropped.
func NewTriggerSet(words []string) *TriggerSet {
	seen := make(map[string]struct{}, len(words))
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		cleaned = append(cleaned, w)
	}
	return &TriggerSet{words: cleaned}
}

// Scan tests every vocabulary word for case-insensitive substring containment
// in the raw text and counts occurrences of the words that are present.
func (t *TriggerSet) Scan(raw string) TriggerScan {
	lowered := strings.ToLower(raw)

	var scan TriggerScan
	for _, word := range t.words {
		n := strings.Count(lowered, word)
		if n == 0 {
			continue
		}
		scan.Distinct++
		scan.Occurrences += n
		scan.Words = append(scan.Words, word)
	}
	return scan
}

// Size returns the number of words in the vocabulary.
func (t *TriggerSet) Size() int {
	return len(t.words)
}
