package vos

import (
	"io/fs"

	"github.com/spf13/afero"
)

// Permission bits passed to access, matching access(2).
const (
	accessExecute = 0o1
)

// access reports whether the caller may use name as the given mode. On the
// host filesystem the kernel decides using the caller's credentials. Other
// filesystems have no notion of a caller so any matching mode bit is
// enough.
func access(vfs VFS, name string, info fs.FileInfo, mode uint32) error {
	if _, ok := vfs.(*afero.OsFs); ok {
		return hostAccess(name, mode)
	}

	perm := uint32(info.Mode().Perm())
	if perm&(mode<<6|mode<<3|mode) == 0 {
		return fs.ErrPermission
	}
	return nil
}
