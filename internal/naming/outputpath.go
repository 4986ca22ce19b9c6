package naming

import (
	"path/filepath"
	"strings"
)

// GetOutputPath builds the output file path for an input file: the input's
// base name with its extension replaced, placed in outputDir.
// ext is the extension without dot (e.g. "mp4").
//
//	/media/in/Clip.MOV -> <outputDir>/Clip.mp4
func GetOutputPath(inputPath, outputDir, ext string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+"."+ext)
}

// PassLogPrefix returns the two-pass statistics prefix for an input inside
// dir, keyed by the input's stem so concurrent runs over different
// directories never share a stats file.
func PassLogPrefix(inputPath, dir string) string {
	base := filepath.Base(inputPath)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base)))
}
