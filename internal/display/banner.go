package display

import (
	"fmt"
	"io"
	"strings"
)

const (
	bannerColor = "\033[1;95m"
	resetColor  = "\033[0m"
)

// PrintBanner writes the program header: name, version and a rule. The name
// is highlighted when color is true.
func PrintBanner(w io.Writer, version string, color bool) {
	title := "vp9batch " + version
	if color {
		fmt.Fprintf(w, "%s%s%s\n", bannerColor, title, resetColor)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, "two-pass VP9 batch transcoder")
	fmt.Fprintln(w, strings.Repeat("=", 30))
}
