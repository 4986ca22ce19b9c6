package pipeline

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/backmassage/vp9batch/internal/naming"
)

// Discover lists the video files directly inside dir (no recursion) and
// returns their absolute paths sorted lexicographically. Only regular files
// with a recognized video extension are returned; subdirectories and
// symlinks are ignored.
func Discover(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &DiscoveryError{Path: dir, Reason: "Invalid path", Err: err}
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, &DiscoveryError{Path: abs, Reason: "Path does not exist", Err: err}
	}
	if !fi.IsDir() {
		return nil, &DiscoveryError{Path: abs, Reason: "Not a directory"}
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, &DiscoveryError{Path: abs, Reason: "Cannot read directory", Err: err}
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if naming.IsVideoFile(e.Name()) {
			files = append(files, filepath.Join(abs, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
