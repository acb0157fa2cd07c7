package vostest

import (
	"bytes"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"syscall"
	"testing"

	"github.com/josephlewis42/techshell/core/vos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeterministicOS(t *testing.T) {
	virtOS := NewDeterministicOS(DefaultPrograms(), nil)

	wd, err := virtOS.Getwd()
	require.NoError(t, err)
	assert.Equal(t, "/", wd)

	home, err := virtOS.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester", home)

	for _, name := range ProgramNames(DefaultPrograms()) {
		path, err := vos.LookPath(virtOS, name)
		assert.NoError(t, err)
		assert.Equal(t, BinDir+"/"+name, path)
	}
}

func TestTestOS_Chdir(t *testing.T) {
	virtOS := NewDeterministicOS(nil, nil)
	require.NoError(t, virtOS.WriteFile("/home/tester/file.txt", nil, 0644))

	cases := map[string]struct {
		dir     string
		wantWd  string
		wantErr error
	}{
		"absolute":      {dir: "/home", wantWd: "/home"},
		"relative":      {dir: "home/tester", wantWd: "/home/tester"},
		"parent":        {dir: "..", wantWd: "/"},
		"missing":       {dir: "/nope", wantWd: "/", wantErr: syscall.ENOENT},
		"not directory": {dir: "/home/tester/file.txt", wantWd: "/", wantErr: syscall.ENOTDIR},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			require.NoError(t, virtOS.Chdir("/"))

			err := virtOS.Chdir(tc.dir)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				var pathErr *fs.PathError
				require.True(t, errors.As(err, &pathErr))
				assert.Equal(t, tc.dir, pathErr.Path)
				assert.ErrorIs(t, err, tc.wantErr)
			}

			wd, _ := virtOS.Getwd()
			assert.Equal(t, tc.wantWd, wd)
		})
	}
}

func TestTestOS_StartProcess(t *testing.T) {
	stdout := &bytes.Buffer{}
	virtOS := NewDeterministicOS(DefaultPrograms(), vos.NewVIOAdapter(nil, stdout, nil))

	proc, err := virtOS.StartProcess("echo", []string{"echo", "a", "b"}, &vos.ProcAttr{Files: virtOS})
	require.NoError(t, err)
	assert.Equal(t, "/bin/echo", proc.Path())
	assert.NotEqual(t, virtOS.Getpid(), proc.Pid())

	status, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, "a b\n", stdout.String())
}

func TestTestOS_StartProcess_childCwd(t *testing.T) {
	stdout := &bytes.Buffer{}
	virtOS := NewDeterministicOS(DefaultPrograms(), vos.NewVIOAdapter(nil, stdout, nil))
	require.NoError(t, virtOS.Chdir("/home/tester"))

	proc, err := virtOS.StartProcess("pwd", nil, &vos.ProcAttr{Files: virtOS})
	require.NoError(t, err)
	_, err = proc.Wait()
	require.NoError(t, err)

	assert.Equal(t, "/home/tester\n", stdout.String())
}

func TestTestOS_StartProcess_notFound(t *testing.T) {
	virtOS := NewDeterministicOS(DefaultPrograms(), nil)

	_, err := virtOS.StartProcess("nope", nil, nil)

	var execErr *exec.Error
	require.True(t, errors.As(err, &execErr))
	assert.ErrorIs(t, err, vos.ErrNotFound)
}

func TestTestOS_StartProcess_notAProgram(t *testing.T) {
	virtOS := NewDeterministicOS(nil, nil)
	require.NoError(t, virtOS.WriteFile("/bin/script", []byte("#!/bin/sh\n"), 0755))

	_, err := virtOS.StartProcess("script", nil, nil)
	assert.ErrorIs(t, err, syscall.ENOEXEC)
}

func TestTestOS_StartProcess_preExec(t *testing.T) {
	virtOS := NewDeterministicOS(DefaultPrograms(), nil)
	redirected := &bytes.Buffer{}

	proc, err := virtOS.StartProcess("cat", nil, &vos.ProcAttr{
		PreExec: func(files *vos.ProcFiles) error {
			files.Stdin = strings.NewReader("from hook")
			files.Stdout = redirected
			return nil
		},
	})
	require.NoError(t, err)

	status, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, "from hook", redirected.String())
}

func TestPrograms(t *testing.T) {
	cases := map[string]struct {
		process    vos.ProcessFunc
		argv       []string
		stdin      string
		setup      func(*TestOS) error
		wantOut    string
		wantStatus int
	}{
		"echo": {
			process: Echo,
			argv:    []string{"echo", "hello", "world"},
			wantOut: "hello world\n",
		},
		"echo no args": {
			process: Echo,
			argv:    []string{"echo"},
			wantOut: "\n",
		},
		"cat stdin": {
			process: Cat,
			argv:    []string{"cat"},
			stdin:   "piped",
			wantOut: "piped",
		},
		"cat file": {
			process: Cat,
			argv:    []string{"cat", "/home/tester/a.txt"},
			setup: func(t *TestOS) error {
				return t.WriteFile("/home/tester/a.txt", []byte("file contents\n"), 0644)
			},
			wantOut: "file contents\n",
		},
		"cat missing": {
			process:    Cat,
			argv:       []string{"cat", "/missing"},
			wantOut:    "cat: open /missing: file does not exist\n",
			wantStatus: 1,
		},
		"ls": {
			process: Ls,
			argv:    []string{"ls", "/"},
			wantOut: "bin\nhome\n",
		},
		"true": {
			process: True,
			argv:    []string{"true"},
		},
		"false": {
			process:    False,
			argv:       []string{"false"},
			wantStatus: 1,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := &Cmd{
				Process: tc.process,
				Argv:    tc.argv,
				Stdin:   strings.NewReader(tc.stdin),
				Setup:   tc.setup,
			}

			out, err := cmd.CombinedOutput()
			require.NoError(t, err)
			assert.Equal(t, tc.wantOut, string(out))
			assert.Equal(t, tc.wantStatus, cmd.ExitStatus)
		})
	}
}
