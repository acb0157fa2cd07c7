package vos

import (
	"errors"
	"io/fs"
	"syscall"
)

// Errno maps err to the system error number it carries or stands for.
func Errno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	switch {
	case err == nil:
		return 0, false
	case errors.As(err, &errno):
		return errno, true
	case errors.Is(err, ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return syscall.ENOENT, true
	case errors.Is(err, fs.ErrPermission):
		return syscall.EACCES, true
	case errors.Is(err, fs.ErrExist):
		return syscall.EEXIST, true
	default:
		return 0, false
	}
}
