package naming

import (
	"path/filepath"
	"sort"
	"strings"
)

// videoExtensions is the recognized set (lowercase, with leading dot).
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".webm": true,
	".mov":  true,
	".avi":  true,
	".flv":  true,
	".wmv":  true,
	".m4v":  true,
}

// IsVideoFile reports whether path carries a recognized video extension.
// Matching is case-insensitive.
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// VideoExtensions returns the recognized extensions, sorted.
func VideoExtensions() []string {
	exts := make([]string, 0, len(videoExtensions))
	for ext := range videoExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
