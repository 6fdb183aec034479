package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTriggerSet(t *testing.T) {
	set := NewTriggerSet([]string{"Urgent", "  PRIZE ", "urgent", "", "click here"})

	assert.Equal(t, 3, set.Size())

	scan := set.Scan("URGENT prize: click here")
	assert.Equal(t, 3, scan.Distinct)
	assert.ElementsMatch(t, []string{"urgent", "prize", "click here"}, scan.Words)
}

func TestTriggerScan(t *testing.T) {
	set := NewTriggerSet([]string{"winner", "urgent", "click here", "bank details"})

	tests := []struct {
		name        string
		text        string
		distinct    int
		occurrences int
		words       []string
	}{
		{
			name:        "no matches",
			text:        "just a normal status update",
			distinct:    0,
			occurrences: 0,
			words:       nil,
		},
		{
			name:        "case-insensitive match",
			text:        "URGENT: you are a WiNnEr",
			distinct:    2,
			occurrences: 2,
			words:       []string{"winner", "urgent"},
		},
		{
			name:        "repeated word counted per occurrence",
			text:        "urgent urgent urgent",
			distinct:    1,
			occurrences: 3,
			words:       []string{"urgent"},
		},
		{
			name:        "multi-word phrase matched as substring",
			text:        "please Click Here and send your bank details",
			distinct:    2,
			occurrences: 2,
			words:       []string{"click here", "bank details"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scan := set.Scan(tt.text)
			assert.Equal(t, tt.distinct, scan.Distinct)
			assert.Equal(t, tt.occurrences, scan.Occurrences)
			assert.ElementsMatch(t, tt.words, scan.Words)
		})
	}
}
