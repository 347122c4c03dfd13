package vos

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ErrSpawn wraps failures to create a process, as opposed to a process
// that ran and exited with a non-zero status.
var ErrSpawn = errors.New("couldn't start process")

// Cmd is similar to go's os/exec.Cmd.
type Cmd struct {
	// Path is the resolved path of the program to run.
	Path string

	// Args holds command line arguments, including the command as Args[0].
	Args []string

	// Env specifies the environment of the process.
	// If Env is nil, the new process uses the current process's
	// environment.
	Env []string

	// Dir specifies the working directory of the command.
	Dir string

	// Stdin specifies the process's standard input.
	Stdin io.Reader

	// Stdout and Stderr specify the process's standard output and error.
	Stdout io.Writer
	Stderr io.Writer
}

// Executor runs a resolved program to completion.
type Executor interface {
	// Run starts cmd, waits for it to exit and returns its exit status.
	// Errors wrapping ErrSpawn mean the process never ran.
	Run(cmd *Cmd) (int, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(cmd *Cmd) (int, error)

// Run implements Executor.Run.
func (f ExecutorFunc) Run(cmd *Cmd) (int, error) {
	return f(cmd)
}

var _ Executor = (ExecutorFunc)(nil)

// OSExecutor runs programs as host processes.
type OSExecutor struct{}

var _ Executor = OSExecutor{}

// Run implements Executor.Run.
func (OSExecutor) Run(cmd *Cmd) (int, error) {
	proc := &exec.Cmd{
		Path:   cmd.Path,
		Args:   cmd.Args,
		Env:    cmd.Env,
		Dir:    cmd.Dir,
		Stdin:  cmd.Stdin,
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}

	if err := proc.Start(); err != nil {
		return -1, fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	err := proc.Wait()
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	case err != nil:
		return -1, err
	default:
		return 0, nil
	}
}
