package vos

import (
	"errors"
	"io/fs"
	"path"
)

// ErrNotDir is returned when changing into something that isn't a directory.
var ErrNotDir = errors.New("not a directory")

// Chdir resolves dir against the working directory wd and checks that it
// is a directory the caller may search. It returns the new absolute working directory; wd is
// never modified so a failed change leaves the caller's state untouched.
func Chdir(vfs VFS, wd, dir string) (string, error) {
	if !path.IsAbs(dir) {
		dir = path.Join(wd, dir)
	}
	dir = path.Clean(dir)

	stat, err := vfs.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", &fs.PathError{Op: "chdir", Path: dir, Err: fs.ErrNotExist}
	case errors.Is(err, fs.ErrPermission):
		return "", &fs.PathError{Op: "chdir", Path: dir, Err: fs.ErrPermission}
	case err != nil:
		return "", &fs.PathError{Op: "chdir", Path: dir, Err: err}
	case !stat.IsDir():
		return "", &fs.PathError{Op: "chdir", Path: dir, Err: ErrNotDir}
	}

	if err := access(vfs, dir, stat, accessExecute); err != nil {
		return "", &fs.PathError{Op: "chdir", Path: dir, Err: err}
	}
	return dir, nil
}
