// Package procgroup starts encoder children in their own process group so
// that a forced stop reaches every helper the encoder may have forked.
package procgroup

import "os/exec"

// Set configures cmd to start as the leader of a new process group.
// Must be called before cmd.Start.
func Set(cmd *exec.Cmd) {
	set(cmd)
}

// Kill forcibly stops the process group led by cmd. A nil command, an
// unstarted command, or an already-exited group is not an error.
func Kill(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return kill(cmd)
}
