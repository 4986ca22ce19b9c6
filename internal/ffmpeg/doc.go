// Package ffmpeg runs a single encoder invocation as a child process.
//
// The child inherits the parent's stdin, stdout and stderr so the encoder's
// native progress output reaches the user unmodified. It is started as the
// leader of its own process group; [Process.Terminate] force-kills the whole
// group and does not return until the child has exited, so no file handle
// on the output survives the call.
//
// Failures surface as two distinct types: [*LaunchError] when the
// executable cannot be started at all, and [*ExitError] when it ran but
// finished unsuccessfully.
package ffmpeg
