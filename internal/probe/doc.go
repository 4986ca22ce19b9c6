// Package probe inspects a source file with one ffprobe JSON call. The
// batch uses it only to report what it is about to encode; a probe failure
// never affects the encode itself.
package probe
