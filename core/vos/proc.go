package vos

import (
	"errors"
	"io"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

// ProcessFunc is a program implemented in Go, it gets the OS of its own
// process and returns the exit status.
type ProcessFunc func(VOS) int

// PreExecFunc runs on behalf of a new process after it inherited its
// standard streams and before its program is looked up and loaded. It may
// only modify files. A non-nil error aborts the new process; the caller of
// StartProcess is unaffected.
type PreExecFunc func(files *ProcFiles) error

type ProcAttr struct {
	// If Dir is non-empty, the child changes into the directory before
	// creating the process.
	Dir string
	// If Env is non-nil, it gives the environment variables for the
	// new process in the form returned by Environ.
	// If it is nil, the result of Environ will be used.
	Env []string

	// Files specifies the open files inherited by the new process.
	// If nil, the new process gets /dev/null style streams.
	Files VIO

	// PreExec, if set, runs before the program image is loaded.
	PreExec PreExecFunc
}

// Process is a started child process.
type Process interface {
	// Pid returns the process ID of the child.
	Pid() int

	// Path returns the resolved path of the program the child runs.
	Path() string

	// Wait blocks until the child exits and reaps it, returning its exit
	// status. Calls after the first return the same result.
	Wait() (int, error)
}

// ProcFiles holds the standard streams a new process will start with.
type ProcFiles struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	owned     listCloser
	closeOnce sync.Once
}

// NewProcFiles copies the streams of vio, nil gives /dev/null style streams.
func NewProcFiles(vio VIO) *ProcFiles {
	if vio == nil {
		vio = NewNullIO()
	}

	return &ProcFiles{
		Stdin:  vio.Stdin(),
		Stdout: vio.Stdout(),
		Stderr: vio.Stderr(),
	}
}

// CloseAfterWait hands ownership of c to the process, it will be closed
// once when the process is reaped or fails to start.
func (pf *ProcFiles) CloseAfterWait(c io.Closer) {
	pf.owned = append(pf.owned, c)
}

// Close releases every owned file, only the first call has an effect.
func (pf *ProcFiles) Close() error {
	var err error
	pf.closeOnce.Do(func() {
		err = pf.owned.Close()
	})
	return err
}

// Prepare builds the files for a new process and runs the pre-exec hook of
// attr against them. If the hook fails, files it opened are released.
func Prepare(attr *ProcAttr) (*ProcFiles, error) {
	files := NewProcFiles(attr.Files)
	if attr.PreExec == nil {
		return files, nil
	}

	if err := attr.PreExec(files); err != nil {
		files.Close()
		return nil, err
	}
	return files, nil
}

func findExecutable(vfs VFS, file string) error {
	d, err := vfs.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the directories named by
// the PATH environment variable. If file contains a slash, it is tried directly
// and the PATH is not consulted. The result may be an absolute path or a path
// relative to the current directory.
//
// If no executable is found but a match in PATH couldn't be run, the first
// such permission error is returned instead of ErrNotFound.
func LookPath(vos VOS, file string) (string, error) {
	if strings.Contains(file, "/") {
		err := findExecutable(vos, file)
		if err == nil {
			return file, nil
		}
		return "", err
	}

	var permErr error
	path := vos.Getenv("PATH")
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		err := findExecutable(vos, path)
		if err == nil {
			return path, nil
		}
		if permErr == nil && errors.Is(err, fs.ErrPermission) {
			permErr = err
		}
	}

	if permErr != nil {
		return "", permErr
	}
	return "", ErrNotFound
}
