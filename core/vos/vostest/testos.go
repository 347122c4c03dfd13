// Package vostest holds fakes for testing code built on vos.
package vostest

import (
	"io/fs"
	"path"
	"sync"
	"testing"

	"github.com/josephlewis42/wish/core/vos"
	"github.com/spf13/afero"
)

// RecordingExecutor is a vos.Executor that records the commands it is asked
// to run instead of starting processes.
type RecordingExecutor struct {
	// Status, if set, decides the outcome of each run. Runs succeed with
	// status 0 otherwise.
	Status vos.ExecutorFunc

	mu   sync.Mutex
	cmds []vos.Cmd
}

var _ vos.Executor = (*RecordingExecutor)(nil)

// Run implements vos.Executor.Run.
func (r *RecordingExecutor) Run(cmd *vos.Cmd) (int, error) {
	r.mu.Lock()
	r.cmds = append(r.cmds, *cmd)
	r.mu.Unlock()

	if r.Status == nil {
		return 0, nil
	}
	return r.Status.Run(cmd)
}

// Commands returns a copy of every command run so far, in completion order.
func (r *RecordingExecutor) Commands() []vos.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]vos.Cmd(nil), r.cmds...)
}

// Args returns the argument vectors of every command run so far.
func (r *RecordingExecutor) Args() [][]string {
	var out [][]string
	for _, cmd := range r.Commands() {
		out = append(out, cmd.Args)
	}
	return out
}

// FsBuilder populates an in-memory filesystem for a single test.
type FsBuilder struct {
	t  testing.TB
	fs vos.VFS
}

// NewFs creates an empty in-memory filesystem with a root directory.
func NewFs(t testing.TB) *FsBuilder {
	t.Helper()
	return (&FsBuilder{t: t, fs: afero.NewMemMapFs()}).Dir("/")
}

// Dir creates the directory and its parents.
func (b *FsBuilder) Dir(name string) *FsBuilder {
	b.t.Helper()
	if err := b.fs.MkdirAll(name, 0755); err != nil {
		b.t.Fatal(err)
	}
	return b
}

// File creates an empty file with the given permissions, creating parent
// directories as needed.
func (b *FsBuilder) File(name string, perm fs.FileMode) *FsBuilder {
	b.t.Helper()
	b.Dir(path.Dir(name))
	if err := afero.WriteFile(b.fs, name, nil, perm); err != nil {
		b.t.Fatal(err)
	}
	if err := b.fs.Chmod(name, perm); err != nil {
		b.t.Fatal(err)
	}
	return b
}

// Chmod changes the permissions of an existing entry, keeping its type.
func (b *FsBuilder) Chmod(name string, perm fs.FileMode) *FsBuilder {
	b.t.Helper()
	if err := b.fs.Chmod(name, perm); err != nil {
		b.t.Fatal(err)
	}
	return b
}

// Executable creates a file with execute permission.
func (b *FsBuilder) Executable(name string) *FsBuilder {
	return b.File(name, 0755)
}

// Fs returns the populated filesystem.
func (b *FsBuilder) Fs() vos.VFS {
	return b.fs
}
