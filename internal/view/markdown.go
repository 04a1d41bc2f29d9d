package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// tableSeparatorPattern matches markdown table separator lines like
// "| --- | :---: |".
var tableSeparatorPattern = regexp.MustCompile(`^\s*\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)+\|?\s*$`)

func isTableSeparator(line string) bool {
	return tableSeparatorPattern.MatchString(line)
}

// splitTableRow splits a markdown table row into trimmed cells, dropping the
// optional leading and trailing pipes.
func splitTableRow(line string) []string {
	stripped := strings.TrimSpace(line)
	stripped = strings.TrimPrefix(stripped, "|")
	stripped = strings.TrimSuffix(stripped, "|")

	cells := strings.Split(stripped, "|")
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
	return cells
}

// RenderMarkdown formats markdown for terminal display. Headings are colored
// by level and tables are re-laid-out with aligned columns; everything else
// passes through unchanged.
func RenderMarkdown(markdown string) string {
	var (
		b     strings.Builder
		lines = strings.Split(markdown, "\n")
		index = 0
	)

	h1 := color.New(color.Bold, color.FgMagenta)
	h2 := color.New(color.Bold, color.FgBlue)
	h3 := color.New(color.Bold, color.FgGreen)

	for index < len(lines) {
		line := lines[index]

		if strings.Contains(line, "|") && index+1 < len(lines) && isTableSeparator(lines[index+1]) {
			header := splitTableRow(line)
			index += 2

			var rows [][]string
			for index < len(lines) && strings.TrimSpace(lines[index]) != "" && strings.Contains(lines[index], "|") {
				rows = append(rows, normalizeRow(splitTableRow(lines[index]), len(header)))
				index++
			}

			b.WriteString(formatTable(header, rows))
			continue
		}

		switch {
		case strings.HasPrefix(line, "# "):
			b.WriteString(h1.Sprint(line[2:]))
		case strings.HasPrefix(line, "## "):
			b.WriteString(h2.Sprint(line[3:]))
		case strings.HasPrefix(line, "### "):
			b.WriteString(h3.Sprint(line[4:]))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
		index++
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// normalizeRow pads or truncates a row to the header width.
func normalizeRow(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row[:width]
}

func formatTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = utf8.RuneCountInString(cell)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	headerStyle := color.New(color.Bold, color.FgCyan)

	var b strings.Builder
	b.WriteString(headerStyle.Sprint(formatRow(header, widths)))
	b.WriteString("\n")
	b.WriteString(separatorRow(widths))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(formatRow(row, widths))
		b.WriteString("\n")
	}
	return b.String()
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i]+utf8padding(cell), cell)
	}
	return "| " + strings.Join(parts, " | ") + " |"
}

// utf8padding compensates Sprintf width counting bytes rather than runes.
func utf8padding(s string) int {
	return len(s) - utf8.RuneCountInString(s)
}

func separatorRow(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return "|" + strings.Join(parts, "|") + "|"
}
