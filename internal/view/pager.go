package view

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const minPageSize = 5

// Paginate writes text to w in screen-sized chunks, prompting on r between
// them. 'q' stops the output; anything else continues.
func Paginate(w io.Writer, r io.Reader, text string) {
	paginateWithSize(w, r, text, pageSize())
}

func paginateWithSize(w io.Writer, r io.Reader, text string, size int) {
	lines := strings.Split(text, "\n")
	reader := bufio.NewReader(r)

	for index := 0; index < len(lines); index += size {
		end := index + size
		if end > len(lines) {
			end = len(lines)
		}
		fmt.Fprintln(w, strings.Join(lines[index:end], "\n"))

		if end >= len(lines) {
			break
		}

		fmt.Fprint(w, "Press Enter for more, or 'q' to quit: ")
		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			break
		}
		if strings.ToLower(strings.TrimSpace(input)) == "q" {
			break
		}
	}
}

// pageSize derives a chunk size from the terminal height, with room left for
// the prompt. Non-terminal output gets the classic 24-line default.
func pageSize() int {
	height := 24
	if _, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && h > 0 {
		height = h
	}
	if height-2 < minPageSize {
		return minPageSize
	}
	return height - 2
}
