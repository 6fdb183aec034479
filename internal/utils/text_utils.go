package utils

import (
	"unicode/utf8"
)

// TruncateHead returns the first maxBytes bytes of text, backing off to the
// nearest valid UTF-8 boundary so a multi-byte rune is never cut in half.
func TruncateHead(text string, maxBytes int) string {
	if maxBytes <= 0 || len(text) <= maxBytes {
		return text
	}
	truncated := text[:maxBytes]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated
}

// TruncateTail returns the last maxBytes bytes of text, advancing to the
// nearest valid UTF-8 boundary.
func TruncateTail(text string, maxBytes int) string {
	if maxBytes <= 0 || len(text) <= maxBytes {
		return text
	}
	truncated := text[len(text)-maxBytes:]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[1:]
	}
	return truncated
}
