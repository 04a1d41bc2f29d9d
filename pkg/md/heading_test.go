package md

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHeading(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "safe title unchanged",
			input:    "Release Notes 2024",
			expected: "Release Notes 2024",
		},
		{
			name:     "empty title",
			input:    "",
			expected: "",
		},
		{
			name:     "hash escaped",
			input:    "Issue #42",
			expected: `Issue \#42`,
		},
		{
			name:     "backslash escaped",
			input:    `path\to\file`,
			expected: `path\\to\\file`,
		},
		{
			name:     "newlines fold to spaces",
			input:    "first\nsecond\rthird",
			expected: "first second third",
		},
		{
			name:     "combined special characters",
			input:    "Title #1 \\ test\nnext",
			expected: `Title \#1 \\ test next`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeHeading(tt.input))
		})
	}
}
