package vos

import (
	"errors"
	"os"
	"os/exec"
	"sync"

	"github.com/spf13/afero"
)

// HostOS is the VOS of the machine the shell runs on.
type HostOS struct {
	VFS
	VIO
	hostEnv
}

var _ VOS = (*HostOS)(nil)

// NewHostOS creates a VOS backed by the real filesystem, environment and
// standard streams of the running process.
func NewHostOS() *HostOS {
	return &HostOS{
		VFS: afero.NewOsFs(),
		VIO: NewHostIO(),
	}
}

// Hostname implements VOS.Hostname.
func (*HostOS) Hostname() (string, error) {
	return os.Hostname()
}

// Args implements VOS.Args.
func (*HostOS) Args() []string {
	return os.Args
}

// Getpid implements VOS.Getpid.
func (*HostOS) Getpid() int {
	return os.Getpid()
}

// Getuid implements VOS.Getuid.
func (*HostOS) Getuid() int {
	return os.Getuid()
}

// Getwd implements VOS.Getwd.
func (*HostOS) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir implements VOS.Chdir.
func (*HostOS) Chdir(dir string) error {
	return os.Chdir(dir)
}

// StartProcess implements VOS.StartProcess using os/exec.
//
// The pre-exec hook runs first, so a failing redirection is reported even
// when the program doesn't exist.
func (h *HostOS) StartProcess(name string, argv []string, attr *ProcAttr) (Process, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}

	if argv == nil {
		argv = []string{name}
	}

	files, err := Prepare(attr)
	if err != nil {
		return nil, err
	}

	execPath, err := LookPath(h, name)
	if err != nil {
		files.Close()
		return nil, &exec.Error{Name: name, Err: err}
	}

	// #nosec G204 - running user supplied programs is the point of a shell.
	cmd := &exec.Cmd{
		Path:   execPath,
		Args:   argv,
		Env:    attr.Env,
		Dir:    attr.Dir,
		Stdin:  files.Stdin,
		Stdout: files.Stdout,
		Stderr: files.Stderr,
	}
	if err := cmd.Start(); err != nil {
		files.Close()
		return nil, err
	}

	return &hostProcess{cmd: cmd, files: files}, nil
}

type hostProcess struct {
	cmd   *exec.Cmd
	files *ProcFiles

	once   sync.Once
	status int
	err    error
}

var _ Process = (*hostProcess)(nil)

func (p *hostProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *hostProcess) Path() string {
	return p.cmd.Path
}

func (p *hostProcess) Wait() (int, error) {
	p.once.Do(func() {
		err := p.cmd.Wait()
		p.files.Close()

		var exitErr *exec.ExitError
		switch {
		case err == nil:
			p.status = 0
		case errors.As(err, &exitErr):
			p.status = exitErr.ExitCode()
		default:
			p.status, p.err = -1, err
		}
	})

	return p.status, p.err
}
