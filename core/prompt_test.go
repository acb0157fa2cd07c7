package core

import (
	"bytes"
	"syscall"
	"testing"

	"github.com/fatih/color"
	"github.com/josephlewis42/techshell/core/config"
	"github.com/josephlewis42/techshell/core/vos"
	"github.com/josephlewis42/techshell/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

// brokenWdOS fails every working directory lookup.
type brokenWdOS struct {
	*vostest.TestOS
}

func (brokenWdOS) Getwd() (string, error) {
	return "", syscall.ENOENT
}

func TestShell_Prompt(t *testing.T) {
	color.NoColor = true

	cases := map[string]struct {
		template string
		cwd      string
		want     string
	}{
		"default":          {template: "", cwd: "/bin", want: "/bin$ "},
		"bash style":       {template: `\u@\h:\w\$ `, cwd: "/", want: "tester@" + vostest.Hostname + ":/$ "},
		"home":             {template: `\w$ `, cwd: "/home/tester", want: "/home/tester$ "},
		"basename":         {template: `[\W]$ `, cwd: "/home", want: "[home]$ "},
		"basename of home": {template: `[\W]$ `, cwd: "/home/tester", want: "[tester]$ "},
		"basename of root": {template: `[\W]$ `, cwd: "/", want: "[/]$ "},
		"escaped":          {template: `\\w > `, cwd: "/bin", want: `\w > `},
		"literal":          {template: `techsh> `, cwd: "/bin", want: `techsh> `},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			virtOS := vostest.NewDeterministicOS(nil, nil)
			assert.NoError(t, virtOS.Chdir(tc.cwd))

			s := newShell(virtOS, nil, &config.Configuration{Prompt: tc.template}, nil)
			assert.Equal(t, tc.want, s.Prompt())
		})
	}
}

func TestShell_Prompt_fullWorkingDirectory(t *testing.T) {
	virtOS := vostest.NewDeterministicOS(nil, nil)
	assert.NoError(t, virtOS.MkdirAll("/home/tester/src", 0755))

	s := newShell(virtOS, nil, config.Default(), nil)

	assert.NoError(t, virtOS.Chdir("/home/tester/src"))
	assert.Equal(t, "/home/tester/src$ ", s.Prompt(), "$HOME is not shortened")
}

func TestShell_Prompt_color(t *testing.T) {
	color.NoColor = false
	defer func() { color.NoColor = true }()

	virtOS := vostest.NewDeterministicOS(nil, nil)
	s := newShell(virtOS, nil, &config.Configuration{Prompt: `\w$ `, ColorPrompt: true}, nil)

	assert.Equal(t, "\x1b[34;1m/\x1b[0m$ ", s.Prompt())
}

func TestShell_Prompt_getwdFails(t *testing.T) {
	stderr := &bytes.Buffer{}
	virtOS := brokenWdOS{vostest.NewDeterministicOS(nil, vos.NewVIOAdapter(nil, nil, stderr))}

	s := newShell(virtOS, nil, config.Default(), nil)

	assert.Equal(t, "$ ", s.Prompt())
	assert.Equal(t, "Error 2 (No such file or directory)\n", stderr.String())
}

func TestShell_Prompt_neverCaches(t *testing.T) {
	virtOS := vostest.NewDeterministicOS(nil, nil)
	s := newShell(virtOS, nil, config.Default(), nil)

	assert.Equal(t, "/$ ", s.Prompt())

	// Changing directories behind the shell's back is still reflected.
	assert.NoError(t, virtOS.Chdir("/bin"))
	assert.Equal(t, "/bin$ ", s.Prompt())
}
