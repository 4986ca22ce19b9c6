package display

import "github.com/kballard/go-shellquote"

// FormatCommand renders binary and args as a single shell-pasteable line.
func FormatCommand(binary string, args []string) string {
	return shellquote.Join(append([]string{binary}, args...)...)
}
