//go:build !unix

package vos

import "os"

func hostAccess(name string, mode uint32) error {
	info, err := os.Stat(name)
	if err != nil {
		return err
	}
	if uint32(info.Mode().Perm())&(mode<<6|mode<<3|mode) == 0 {
		return os.ErrPermission
	}
	return nil
}
