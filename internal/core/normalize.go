package core

import (
	"regexp"
	"strings"
)

// The normalization pipeline must match the one the model was trained with:
// lowercase, strip URLs, strip email addresses, strip everything that is not
// a lowercase letter or whitespace, collapse whitespace, trim.
var (
	urlPattern        = regexp.MustCompile(`http\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	nonLetterPattern  = regexp.MustCompile(`[^a-z\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize cleans raw message text for the classifier. It is pure and
// idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, " ")
	text = emailPattern.ReplaceAllString(text, " ")
	text = nonLetterPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
