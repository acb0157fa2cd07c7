package vos

import "github.com/spf13/afero"

// VFS implements a virtual filesystem and is the second layer of the virtual OS.
type VFS = afero.Fs
