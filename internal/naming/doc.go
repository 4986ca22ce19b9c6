// Package naming owns everything derived from file names: the recognized
// video extension set, the output path for an encode job, and in-run
// collision resolution when two sources map to the same output.
package naming
