// Package editor runs the interactive edit flow: fetch a page, hand its
// markdown rendition to an external editor, and upload the result.
package editor

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// fallbackEditors are tried in order when $EDITOR is unset or unusable.
var fallbackEditors = []string{"code", "vim", "nano", "emacs", "gedit", "notepad++"}

// ResolveEditor picks the editor command to run. $EDITOR wins when its first
// word resolves on PATH; otherwise common editors are probed, with vi (or
// notepad on Windows) as the last resort.
func ResolveEditor() []string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		parts := strings.Fields(editor)
		if len(parts) > 0 {
			if _, err := exec.LookPath(parts[0]); err == nil {
				return parts
			}
		}
	}

	for _, candidate := range fallbackEditors {
		if _, err := exec.LookPath(candidate); err == nil {
			return []string{candidate}
		}
	}

	if runtime.GOOS == "windows" {
		return []string{"notepad"}
	}
	return []string{"vi"}
}
