package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "digit-bearing identifiers",
			input:    "Your order shop42 ships with ref554 tomorrow",
			expected: []string{"shop42", "ref554"},
		},
		{
			name:     "pure-letter words excluded",
			input:    "please verify your account immediately",
			expected: nil,
		},
		{
			name:     "email addresses",
			input:    "reply to billing@acme-corp.com for details",
			expected: []string{"billing@acme-corp.com"},
		},
		{
			name:     "case folded before matching",
			input:    "Invoice INV2024 from Billing@Example.COM",
			expected: []string{"inv2024", "billing@example.com"},
		},
		{
			name:     "duplicates collapsed preserving order",
			input:    "code a1b2 then x9 then a1b2 again",
			expected: []string{"a1b2", "x9"},
		},
		{
			name:     "bare numbers count as identifiers",
			input:    "wire 5000 to account 5000",
			expected: []string{"5000"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractTokens(tt.input))
		})
	}
}
