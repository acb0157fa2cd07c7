package core

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/josephlewis42/techshell/core/vos"
)

// FormatOSError renders err the way the shell reports OS failures, e.g.
// "Error 2 (No such file or directory)".
func FormatOSError(err error) string {
	if errno, ok := vos.Errno(err); ok {
		return fmt.Sprintf("Error %d (%s)", int(errno), capitalize(errno.Error()))
	}
	return fmt.Sprintf("Error (%s)", capitalize(err.Error()))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// reportError writes err to the shell's stderr in the standard format.
func (s *Shell) reportError(err error) {
	fmt.Fprintln(s.VirtualOS.Stderr(), FormatOSError(err))
}
