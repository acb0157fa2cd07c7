// Package vostest provides an in-memory, deterministic VOS whose programs
// are Go functions.
package vostest

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os/exec"
	"path"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/josephlewis42/techshell/core/vos"
	"github.com/spf13/afero"
)

const (
	// BinDir holds the installed programs.
	BinDir = "/bin"
	// Hostname is reported by every TestOS.
	Hostname = "vm-4cb2f"
	// UID is the user ID of every process.
	UID = 1000
)

// machine is shared by every process of a TestOS.
type machine struct {
	fs       afero.Fs
	programs map[string]vos.ProcessFunc
	lastPID  int32
}

func (m *machine) nextPID() int {
	return int(atomic.AddInt32(&m.lastPID, 1))
}

// TestOS is one process on an in-memory machine.
type TestOS struct {
	vos.VFS
	vos.VIO
	*vos.MapEnv

	machine *machine
	args    []string
	pid     int

	mu  sync.Mutex
	dir string
}

var _ vos.VOS = (*TestOS)(nil)

// NewDeterministicOS creates the init process of a new in-memory machine.
// Each program is installed as an executable at /bin/<name>, PATH is /bin
// and the working directory is "/".
func NewDeterministicOS(programs map[string]vos.ProcessFunc, stdio vos.VIO) *TestOS {
	m := &machine{
		fs:       afero.NewMemMapFs(),
		programs: make(map[string]vos.ProcessFunc),
	}

	_ = m.fs.MkdirAll(BinDir, 0755)
	_ = m.fs.MkdirAll("/home/tester", 0755)
	for name, program := range programs {
		binPath := path.Join(BinDir, name)
		_ = afero.WriteFile(m.fs, binPath, []byte("#!/bin/false\n"), 0755)
		m.programs[binPath] = program
	}

	if stdio == nil {
		stdio = vos.NewNullIO()
	}

	env := vos.NewMapEnvFromEnvList([]string{
		"HOME=/home/tester",
		"PATH=" + BinDir,
		"USER=tester",
	})

	return newProcess(m, env, stdio, []string{"init"}, "/")
}

func newProcess(m *machine, env *vos.MapEnv, stdio vos.VIO, args []string, dir string) *TestOS {
	proc := &TestOS{
		VIO:     stdio,
		MapEnv:  env,
		machine: m,
		args:    args,
		pid:     m.nextPID(),
		dir:     dir,
	}
	proc.VFS = vos.NewRelativeFs(m.fs, proc.cwd)

	return proc
}

func (t *TestOS) cwd() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dir
}

// Hostname implements VOS.Hostname.
func (*TestOS) Hostname() (string, error) {
	return Hostname, nil
}

// Args implements VOS.Args.
func (t *TestOS) Args() []string {
	return t.args
}

// Getpid implements VOS.Getpid.
func (t *TestOS) Getpid() int {
	return t.pid
}

// Getuid implements VOS.Getuid.
func (*TestOS) Getuid() int {
	return UID
}

// Getwd implements VOS.Getwd.
func (t *TestOS) Getwd() (string, error) {
	return t.cwd(), nil
}

// Chdir implements VOS.Chdir.
func (t *TestOS) Chdir(dir string) error {
	target := path.Join(t.cwd(), dir)
	if path.IsAbs(dir) {
		target = path.Clean(dir)
	}

	stat, err := t.machine.fs.Stat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOENT}
	case err != nil:
		return &fs.PathError{Op: "chdir", Path: dir, Err: err}
	case !stat.IsDir():
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.dir = target
	return nil
}

// StartProcess implements VOS.StartProcess. The program only runs once Wait
// is called, on the caller's goroutine.
func (t *TestOS) StartProcess(name string, argv []string, attr *vos.ProcAttr) (vos.Process, error) {
	if attr == nil {
		attr = &vos.ProcAttr{}
	}

	if argv == nil {
		argv = []string{name}
	}

	files, err := vos.Prepare(attr)
	if err != nil {
		return nil, err
	}

	execPath, err := vos.LookPath(t, name)
	if err != nil {
		files.Close()
		return nil, &exec.Error{Name: name, Err: err}
	}

	absPath := path.Join(t.cwd(), execPath)
	if path.IsAbs(execPath) {
		absPath = path.Clean(execPath)
	}
	program, ok := t.machine.programs[absPath]
	if !ok {
		files.Close()
		return nil, &fs.PathError{Op: "fork/exec", Path: execPath, Err: syscall.ENOEXEC}
	}

	env := vos.NewMapEnvFromEnvList(t.Environ())
	if attr.Env != nil {
		env = vos.NewMapEnvFromEnvList(attr.Env)
	}

	child := newProcess(t.machine, env, vos.NewVIOAdapter(files.Stdin, files.Stdout, files.Stderr), argv, t.cwd())
	if attr.Dir != "" {
		if err := child.Chdir(attr.Dir); err != nil {
			files.Close()
			return nil, err
		}
	}

	return &testProcess{os: child, program: program, files: files, path: execPath}, nil
}

type testProcess struct {
	os      *TestOS
	program vos.ProcessFunc
	files   *vos.ProcFiles
	path    string

	once   sync.Once
	status int
}

var _ vos.Process = (*testProcess)(nil)

func (p *testProcess) Pid() int {
	return p.os.Getpid()
}

func (p *testProcess) Path() string {
	return p.path
}

func (p *testProcess) Wait() (int, error) {
	p.once.Do(func() {
		p.status = p.program(p.os)
		p.files.Close()
	})
	return p.status, nil
}

// ReadFile reads a file from the machine, relative paths start at the
// working directory of t.
func (t *TestOS) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(t, name)
}

// WriteFile writes a file on the machine, relative paths start at the
// working directory of t.
func (t *TestOS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(t, name, data, perm)
}

// Cmd is similar to exec.Cmd, it runs a single program on a fresh machine.
type Cmd struct {
	// Process function
	Process vos.ProcessFunc
	// Process arguments, the first argument should be the process name.
	Argv []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	ExitStatus int

	// Setup runs against the machine before the program starts.
	Setup func(*TestOS) error
}

func Command(process vos.ProcessFunc, name string, arg ...string) *Cmd {
	return &Cmd{
		Process: process,
		Argv:    append([]string{name}, arg...),
	}
}

func (c *Cmd) CombinedOutput() ([]byte, error) {
	// stdout, stderr
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Stderr = buf

	err := c.Run()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run starts the comand and waits for it to complete.
func (c *Cmd) Run() error {
	name := path.Base(c.Argv[0])
	initProc := NewDeterministicOS(map[string]vos.ProcessFunc{name: c.Process}, nil)

	if c.Setup != nil {
		if err := c.Setup(initProc); err != nil {
			return err
		}
	}

	proc, err := initProc.StartProcess(name, c.Argv, &vos.ProcAttr{
		Files: vos.NewVIOAdapter(c.Stdin, c.Stdout, c.Stderr),
	})
	if err != nil {
		return err
	}

	c.ExitStatus, err = proc.Wait()
	return err
}

// ProgramNames lists the names of the programs, sorted.
func ProgramNames(programs map[string]vos.ProcessFunc) []string {
	var out []string
	for name := range programs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
