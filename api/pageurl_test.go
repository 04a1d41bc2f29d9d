package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPageID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "viewpage query parameter",
			input:    "https://confluence.example.com/pages/viewpage.action?pageId=123456",
			expected: "123456",
		},
		{
			name:     "pages path segment",
			input:    "https://confluence.example.com/pages/123456/Some+Page+Title",
			expected: "123456",
		},
		{
			name:     "bare numeric id",
			input:    "123456",
			expected: "123456",
		},
		{
			name:     "query parameter with extra params",
			input:    "https://confluence.example.com/pages/viewpage.action?spaceKey=X&pageId=42",
			expected: "42",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "no id anywhere",
			input:   "https://confluence.example.com/display/SPACE/Page+Title",
			wantErr: true,
		},
		{
			name:    "pages segment followed by non-numeric",
			input:   "https://confluence.example.com/pages/viewpage.action",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractPageID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}
