package vos

import (
	"errors"
	"io/fs"
	"os/exec"
	"path"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

func findExecutable(vfs VFS, file string) error {
	d, err := vfs.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if d.IsDir() {
		return fs.ErrPermission
	}
	return access(vfs, file, d, accessExecute)
}

// LookPath searches the directories of snap.Path, in order, for an
// executable named file and returns the first match. Each candidate is
// formed as dir + "/" + file; relative directories are taken relative to
// snap.Dir.
//
// There is no implicit directory: an empty search path, or a file found
// in none of its directories, results in ErrNotFound.
func LookPath(vfs VFS, snap Snapshot, file string) (string, error) {
	if file == "" {
		return "", ErrNotFound
	}

	for _, dir := range snap.Path {
		if !path.IsAbs(dir) && snap.Dir != "" {
			dir = path.Join(snap.Dir, dir)
		}
		candidate := dir + "/" + file
		if err := findExecutable(vfs, candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}
