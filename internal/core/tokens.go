package core

import (
	"regexp"
	"strings"
)

// Signature tokens are extracted from the raw text, not the normalized text:
// digits are what make an identifier an identifier (order numbers, account
// IDs), and normalization would strip them.
var (
	// Alphanumeric runs containing at least one digit ("store99", "ref554").
	identifierPattern = regexp.MustCompile(`\b[a-z]*[0-9][a-z0-9]*\b`)
	// Email-address-shaped substrings.
	addressPattern = regexp.MustCompile(`[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
)

// ExtractTokens returns the deduplicated set of signature tokens in the raw
// text, lowercased. Order is not significant.
func ExtractTokens(raw string) []string {
	lowered := strings.ToLower(raw)

	seen := make(map[string]struct{})
	var tokens []string
	add := func(tok string) {
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	for _, m := range identifierPattern.FindAllString(lowered, -1) {
		add(m)
	}
	for _, m := range addressPattern.FindAllString(lowered, -1) {
		add(m)
	}
	return tokens
}
