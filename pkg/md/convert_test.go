package md

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStorage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "basic paragraph",
			input:    "<p>Hello world</p>",
			expected: "Hello world",
		},
		{
			name:     "atx headings",
			input:    "<h1>Title</h1><h2>Subtitle</h2>",
			expected: "# Title\n\n## Subtitle",
		},
		{
			name:     "bold and italic",
			input:    "<p>This is <strong>bold</strong> and <em>italic</em></p>",
			expected: "This is **bold** and *italic*",
		},
		{
			name:     "hyphen bullets",
			input:    "<ul><li>Item 1</li><li>Item 2</li></ul>",
			expected: "- Item 1\n- Item 2",
		},
		{
			name:     "link",
			input:    `<p><a href="https://example.com">Example</a></p>`,
			expected: "[Example](https://example.com)",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "\n\n  <p>content</p>  \n",
			expected: "content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FromStorage(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFromStorage_StripsScriptAndStyle(t *testing.T) {
	input := `<p>visible</p><script>alert("hidden")</script><style>p { color: red }</style>`

	result, err := FromStorage(input)
	require.NoError(t, err)

	assert.Contains(t, result, "visible")
	assert.NotContains(t, result, "alert")
	assert.NotContains(t, result, "color: red")
}

func TestFromStorageWithMacros(t *testing.T) {
	input := `<p>Hi</p><ac:structured-macro ac:name="toc"></ac:structured-macro><p>Bye</p>`

	markdown, macros, err := FromStorageWithMacros(input)
	require.NoError(t, err)

	assert.Contains(t, markdown, "Hi")
	assert.Contains(t, markdown, "Bye")
	assert.Contains(t, markdown, "[[CONFLUENCE-MACRO-1]]")
	assert.Equal(t, MacroMap{
		"[[CONFLUENCE-MACRO-1]]": `<ac:structured-macro ac:name="toc"></ac:structured-macro>`,
	}, macros)
}

func TestFromStorageWithMacros_PlaceholderSurvivesRoundTrip(t *testing.T) {
	input := `<p>before</p><ac:structured-macro ac:name="toc"></ac:structured-macro><p>after</p>`

	markdown, macros, err := FromStorageWithMacros(input)
	require.NoError(t, err)

	restored := RestoreMacros(markdown, macros)
	assert.Contains(t, restored, `<ac:structured-macro ac:name="toc"></ac:structured-macro>`)
	assert.NotContains(t, restored, "CONFLUENCE-MACRO")
}

func TestFromStorageWithMacros_Empty(t *testing.T) {
	markdown, macros, err := FromStorageWithMacros("")
	require.NoError(t, err)
	assert.Empty(t, markdown)
	assert.Empty(t, macros)
}

func TestToStorage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "heading",
			input:    "# Title",
			contains: []string{"<h1>Title</h1>"},
		},
		{
			name:     "paragraph",
			input:    "Hello world",
			contains: []string{"<p>Hello world</p>"},
		},
		{
			name:     "table",
			input:    "| Name | Age |\n|------|-----|\n| Alice | 30 |",
			contains: []string{"<table>", "<th>Name</th>", "<td>Alice</td>"},
		},
		{
			name:     "fenced code",
			input:    "```\ncode here\n```",
			contains: []string{"<pre><code>code here"},
		},
		{
			name:     "hard line break",
			input:    "line one\nline two",
			contains: []string{"<br"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ToStorage(tt.input)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, result, want)
			}
		})
	}
}

func TestToStorage_Empty(t *testing.T) {
	result, err := ToStorage("")
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestToStorage_MacroMarkupPassesThrough(t *testing.T) {
	// Restored macro markup is raw XML inside the markdown and must reach the
	// storage output intact.
	input := "intro text\n\n<ac:structured-macro ac:name=\"toc\"></ac:structured-macro>\n\nclosing text"

	result, err := ToStorage(input)
	require.NoError(t, err)

	assert.Contains(t, result, `<ac:structured-macro ac:name="toc"></ac:structured-macro>`)
	assert.Contains(t, result, "intro text")
	assert.Contains(t, result, "closing text")
}
