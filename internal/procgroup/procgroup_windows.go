//go:build windows

package procgroup

import (
	"errors"
	"os"
	"os/exec"
)

// Process groups are not used on Windows; Kill terminates the direct child.
func set(cmd *exec.Cmd) {}

func kill(cmd *exec.Cmd) error {
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
