package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/backmassage/vp9batch/internal/procgroup"
)

// Process is one running encoder invocation.
type Process struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error // valid once done is closed

	termOnce sync.Once
	termErr  error
}

// Stdio is the set of streams handed to the child. The zero value means
// the child inherits the parent's streams.
type Stdio struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Start spawns binary with args, inheriting the parent's standard streams.
func Start(binary string, args []string) (*Process, error) {
	return StartWithStdio(binary, args, Stdio{})
}

// StartWithStdio is Start with explicit stream overrides; nil fields fall
// back to the parent's streams.
func StartWithStdio(binary string, args []string, stdio Stdio) (*Process, error) {
	cmd := exec.Command(binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if stdio.Stdin != nil {
		cmd.Stdin = stdio.Stdin
	}
	if stdio.Stdout != nil {
		cmd.Stdout = stdio.Stdout
	}
	if stdio.Stderr != nil {
		cmd.Stderr = stdio.Stderr
	}
	procgroup.Set(cmd)

	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Binary: binary, Err: err}
	}

	p := &Process{cmd: cmd, done: make(chan struct{})}
	go func() {
		p.err = exitError(cmd.Wait())
		close(p.done)
	}()
	return p, nil
}

// Pid returns the child's process ID.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Done is closed once the child has exited and been reaped.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the child exits. It returns nil on exit status 0 and an
// [*ExitError] otherwise. Safe to call from several goroutines.
func (p *Process) Wait() error {
	<-p.done
	return p.err
}

// WaitContext is Wait, except that cancelling ctx terminates the child
// (see [Process.Terminate]) and returns ctx.Err() once it is gone.
func (p *Process) WaitContext(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		if err := p.Terminate(); err != nil {
			return errors.Join(ctx.Err(), err)
		}
		return ctx.Err()
	}
}

// killGroup is swapped in tests.
var killGroup = procgroup.Kill

// Terminate force-kills the child's process group and blocks until the
// child has exited. If the group kill fails the child itself is killed and
// the group error is returned, still only after the child is gone. Calling
// it on an exited process, or more than once, is a no-op.
func (p *Process) Terminate() error {
	p.termOnce.Do(func() {
		select {
		case <-p.done:
			return
		default:
		}
		if err := killGroup(p.cmd); err != nil {
			p.termErr = fmt.Errorf("kill process group: %w", err)
			if kerr := p.cmd.Process.Kill(); kerr != nil && !errors.Is(kerr, os.ErrProcessDone) {
				p.termErr = errors.Join(p.termErr, kerr)
			}
		}
		<-p.done
	})
	return p.termErr
}

func exitError(err error) error {
	if err == nil {
		return nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{Code: ee.ExitCode(), State: ee.ProcessState.String()}
	}
	return &ExitError{Code: -1, State: err.Error()}
}
