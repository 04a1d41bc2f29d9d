package md

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"
)

// MacroMap maps placeholder tokens to the original serialized macro markup.
// It is created by one extraction pass and consumed by the matching
// restoration pass; the codec below lets it survive storage as plain text in
// between.
type MacroMap map[string]string

const (
	macroBlockStart = "<!-- CONFLUENCE_MACROS_START\n"
	macroBlockEnd   = "\nCONFLUENCE_MACROS_END -->"
)

var (
	macroBlockPattern      = regexp.MustCompile(`(?s)<!-- CONFLUENCE_MACROS_START\n(.*?)\nCONFLUENCE_MACROS_END -->`)
	macroBlockStripPattern = regexp.MustCompile(`(?s)<!-- CONFLUENCE_MACROS_START\n.*?\nCONFLUENCE_MACROS_END -->\n?`)
)

// Encode serializes the map to base64-wrapped JSON suitable for embedding in
// a markdown document.
func (m MacroMap) Encode() string {
	payload, _ := json.Marshal(m)
	return base64.StdEncoding.EncodeToString(payload)
}

// DecodeMacroMap is the inverse of Encode. Decoding is fail-open: malformed
// base64 or JSON yields an empty map, never an error, so a corrupted macro
// block cannot block the rest of an edit.
func DecodeMacroMap(encoded string) MacroMap {
	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return MacroMap{}
	}
	var m MacroMap
	if err := json.Unmarshal(payload, &m); err != nil || m == nil {
		return MacroMap{}
	}
	return m
}

// AppendMacroBlock appends the encoded macro block to a markdown document.
// An empty map appends nothing.
func AppendMacroBlock(doc string, m MacroMap) string {
	if len(m) == 0 {
		return doc
	}
	return doc + "\n\n" + macroBlockStart + m.Encode() + macroBlockEnd + "\n"
}

// ExtractMacroBlock locates the macro block in a document and decodes it.
// A document without a block yields an empty map.
func ExtractMacroBlock(doc string) MacroMap {
	match := macroBlockPattern.FindStringSubmatch(doc)
	if match == nil {
		return MacroMap{}
	}
	return DecodeMacroMap(strings.TrimSpace(match[1]))
}

// RemoveMacroBlock removes the macro block, plus one trailing newline, from a
// document, leaving all other content untouched.
func RemoveMacroBlock(doc string) string {
	return macroBlockStripPattern.ReplaceAllString(doc, "")
}
