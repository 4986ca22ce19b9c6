package ffmpeg

import "fmt"

// LaunchError reports that the encoder executable could not be started
// (missing binary, permission denied, exec format error).
type LaunchError struct {
	Binary string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Binary, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitError reports that the encoder ran but did not finish successfully.
// Code is the exit status, or -1 when the child was ended by a signal; State
// carries the OS description in either case (e.g. "exit status 1",
// "signal: killed").
type ExitError struct {
	Code  int
	State string
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return "encoder terminated abnormally (" + e.State + ")"
	}
	return fmt.Sprintf("encoder exited with code %d", e.Code)
}
