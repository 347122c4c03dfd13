// Package vos is the boundary between the interpreter and the host: the
// filesystem used to resolve programs and directories, and the executor
// that turns a resolved program into a running process.
package vos

import (
	"github.com/spf13/afero"
)

// VFS is the filesystem the interpreter resolves programs and directories
// against.
type VFS = afero.Fs

// NewOsFs returns a VFS backed by the host filesystem.
func NewOsFs() VFS {
	return afero.NewOsFs()
}

// Snapshot is the interpreter state a spawned unit observes. It is copied
// at spawn time so later builtins can't change a unit that is already
// running.
type Snapshot struct {
	// Dir is the absolute working directory.
	Dir string
	// Path is the ordered list of directories searched for programs.
	Path []string
	// Env is the environment of spawned processes, nil inherits the
	// interpreter's own.
	Env []string
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Dir:  s.Dir,
		Path: append([]string(nil), s.Path...),
		Env:  append([]string(nil), s.Env...),
	}
}
