package md

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMacroElement(t *testing.T) {
	tests := []struct {
		tagName  string
		expected bool
	}{
		{"ac:structured-macro", true},
		{"ac:image", true},
		{"ac:link", true},
		{"p", false},
		{"table", false},
		{"", false},
		{"academy", false},
	}

	for _, tt := range tests {
		t.Run(tt.tagName, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMacroElement(tt.tagName))
		})
	}
}

func TestExtractMacros_SimpleMacro(t *testing.T) {
	input := `<p>Hi</p><ac:structured-macro ac:name="toc"></ac:structured-macro><p>Bye</p>`

	out, macros, err := ExtractMacros(input)
	require.NoError(t, err)

	assert.Contains(t, out, "[[CONFLUENCE-MACRO-1]]")
	assert.NotContains(t, out, "ac:structured-macro")
	assert.Equal(t, MacroMap{
		"[[CONFLUENCE-MACRO-1]]": `<ac:structured-macro ac:name="toc"></ac:structured-macro>`,
	}, macros)
}

func TestExtractMacros_NoMacros(t *testing.T) {
	out, macros, err := ExtractMacros("<p>Just text</p>")
	require.NoError(t, err)

	assert.Empty(t, macros)
	assert.Contains(t, out, "Just text")
}

func TestExtractMacros_NestedMacroNotExtractedSeparately(t *testing.T) {
	input := `<ac:structured-macro ac:name="expand">` +
		`<ac:rich-text-body><ac:structured-macro ac:name="toc"></ac:structured-macro></ac:rich-text-body>` +
		`</ac:structured-macro>`

	out, macros, err := ExtractMacros(input)
	require.NoError(t, err)

	require.Len(t, macros, 1)
	outer, ok := macros["[[CONFLUENCE-MACRO-1]]"]
	require.True(t, ok)

	// The inner macro survives verbatim inside the outer's captured markup.
	assert.Contains(t, outer, `<ac:structured-macro ac:name="toc">`)
	assert.NotContains(t, out, "CONFLUENCE-MACRO-2")
}

func TestExtractMacros_NumberingFollowsDocumentOrder(t *testing.T) {
	input := `<ac:structured-macro ac:name="first"></ac:structured-macro>` +
		`<p>between</p>` +
		`<ac:image ri:filename="pic.png"></ac:image>` +
		`<ac:structured-macro ac:name="third"></ac:structured-macro>`

	out, macros, err := ExtractMacros(input)
	require.NoError(t, err)
	require.Len(t, macros, 3)

	assert.Contains(t, macros["[[CONFLUENCE-MACRO-1]]"], `ac:name="first"`)
	assert.Contains(t, macros["[[CONFLUENCE-MACRO-2]]"], "ac:image")
	assert.Contains(t, macros["[[CONFLUENCE-MACRO-3]]"], `ac:name="third"`)

	// Placeholders appear in the rewritten document in the same order.
	for i := 1; i < 3; i++ {
		a := strings.Index(out, Placeholder(i))
		b := strings.Index(out, Placeholder(i+1))
		require.GreaterOrEqual(t, a, 0)
		require.GreaterOrEqual(t, b, 0)
		assert.Less(t, a, b)
	}
}

func TestExtractMacros_RoundTripPreservesMarkup(t *testing.T) {
	input := `<h1>Doc</h1>` +
		`<ac:structured-macro ac:name="toc"></ac:structured-macro>` +
		`<p>text</p>` +
		`<ac:structured-macro ac:name="code"><ac:plain-text-body>x = 1</ac:plain-text-body></ac:structured-macro>`

	out, macros, err := ExtractMacros(input)
	require.NoError(t, err)
	require.Len(t, macros, 2)

	restored := RestoreMacros(out, macros)
	for placeholder, markup := range macros {
		assert.NotContains(t, restored, placeholder)
		assert.Contains(t, restored, markup)
	}
}

func TestRestoreMacros(t *testing.T) {
	macros := MacroMap{
		"[[CONFLUENCE-MACRO-1]]": `<ac:structured-macro ac:name="toc"></ac:structured-macro>`,
		"[[CONFLUENCE-MACRO-2]]": `<ac:image ri:filename="a.png"></ac:image>`,
	}
	text := "before\n\n[[CONFLUENCE-MACRO-1]]\n\nmiddle [[CONFLUENCE-MACRO-2]] after"

	restored := RestoreMacros(text, macros)

	assert.Equal(t, "before\n\n"+
		`<ac:structured-macro ac:name="toc"></ac:structured-macro>`+
		"\n\nmiddle "+
		`<ac:image ri:filename="a.png"></ac:image>`+
		" after", restored)
}

func TestRestoreMacros_EmptyMap(t *testing.T) {
	text := "nothing to do here"
	assert.Equal(t, text, RestoreMacros(text, MacroMap{}))
}

func TestPlaceholder(t *testing.T) {
	for _, n := range []int{1, 2, 42} {
		assert.Equal(t, fmt.Sprintf("[[CONFLUENCE-MACRO-%d]]", n), Placeholder(n))
	}
}
