// Package planner maps a job and a pass number to the encoder argument list.
// It is pure: no I/O, no failure modes. Both passes share the same video
// skeleton (720p scale, constant-quality libvpx-vp9, fixed effort and
// threading); they differ only in pass index, audio flags, the pass-1
// "-an"/null-sink flags, and the destination.
package planner
