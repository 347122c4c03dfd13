//go:build unix

package vos

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

func hostAccess(name string, mode uint32) error {
	if err := unix.Access(name, mode); err != nil {
		if err == unix.EACCES || err == unix.EPERM {
			return fs.ErrPermission
		}
		return err
	}
	return nil
}
