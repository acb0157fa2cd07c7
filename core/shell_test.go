package core

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/techshell/core/config"
	"github.com/josephlewis42/techshell/core/logger"
	"github.com/josephlewis42/techshell/core/vos"
	"github.com/josephlewis42/techshell/core/vos/vostest"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interruptLine stands for the user pressing ^C in a script.
const interruptLine = "^C"

// scriptReader replays lines like a terminal would, echoing the prompt and
// each line to out.
type scriptReader struct {
	lines   []string
	out     io.Writer
	prompt  string
	prompts []string
	resets  int
}

var _ LineReader = (*scriptReader)(nil)

func (r *scriptReader) SetPrompt(prompt string) {
	r.prompt = prompt
	r.prompts = append(r.prompts, prompt)
}

func (r *scriptReader) Readline() (string, error) {
	fmt.Fprint(r.out, r.prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}

	line := r.lines[0]
	r.lines = r.lines[1:]
	fmt.Fprintln(r.out, line)

	if line == interruptLine {
		return "", readline.ErrInterrupt
	}
	return line, nil
}

func (r *scriptReader) ResetHistory() {
	r.resets++
}

type testShell struct {
	*Shell
	os       *vostest.TestOS
	reader   *scriptReader
	out      *bytes.Buffer
	eventLog *bytes.Buffer
}

// newTestShell creates a shell over an in-memory OS, stdout and stderr of
// the shell and its children both go to out.
func newTestShell(t *testing.T, lines ...string) *testShell {
	t.Helper()

	out := &bytes.Buffer{}
	eventLog := &bytes.Buffer{}
	virtOS := vostest.NewDeterministicOS(vostest.DefaultPrograms(), vos.NewVIOAdapter(nil, out, out))
	reader := &scriptReader{lines: lines, out: out}

	events := logger.NewJsonLinesLogRecorder(eventLog).Sessionless()
	return &testShell{
		Shell:    newShell(virtOS, reader, config.Default(), events),
		os:       virtOS,
		reader:   reader,
		out:      out,
		eventLog: eventLog,
	}
}

func (ts *testShell) events(t *testing.T) []logger.LogType {
	t.Helper()

	var out []logger.LogType
	err := logger.ReadJSONLinesLog(bytes.NewReader(ts.eventLog.Bytes()), func(le *logger.LogEntry) {
		out = append(out, le.GetLogType())
	})
	require.NoError(t, err)
	return out
}

func TestShell_Transcripts(t *testing.T) {
	color.NoColor = true

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	cases := map[string][]string{
		"empty_lines": {"", ""},
		"cd": {
			"cd /home",
			"cd tester",
			"pwd",
			"cd /nope",
			"cd",
			"cd a b",
			"cd ..",
		},
		"redirect_round_trip": {
			"echo hello > out.txt",
			"cat < out.txt",
			"ls",
		},
		"not_found": {
			"nope",
			"echo still here",
		},
		"exit": {
			"exit",
			"echo never",
		},
		"interrupt": {
			interruptLine,
			"echo after",
		},
		"redirect_failure": {
			"cat < missing.txt",
			"echo ok",
		},
		"history": {
			"echo a",
			"history",
			"history -c",
			"history",
		},
		"help": {"help"},
	}

	for tn, lines := range cases {
		t.Run(tn, func(t *testing.T) {
			ts := newTestShell(t, lines...)

			assert.Equal(t, 0, ts.Run())
			g.Assert(t, tn, ts.out.Bytes())
		})
	}
}

func TestShell_Run_blankLinesNeverExecute(t *testing.T) {
	ts := newTestShell(t, "", " ", "\t", "  \t  ")

	assert.Equal(t, 0, ts.Run())

	want := "/$ \n" + "/$  \n" + "/$ \t\n" + "/$   \t  \n" + "/$ \n"
	assert.Equal(t, want, ts.out.String(), "only prompts and echoed input")
	assert.Empty(t, ts.History())
	assert.Len(t, ts.reader.prompts, 5)

	events := ts.events(t)
	require.Len(t, events, 2)
	assert.IsType(t, &logger.SessionStart{}, events[0])
	assert.Equal(t, &logger.SessionEnd{Reason: logger.EndReasonEOF, Lines: 0}, events[1])
}

func TestShell_Run_exitStopsReading(t *testing.T) {
	ts := newTestShell(t, "exit", "echo never")

	assert.Equal(t, 0, ts.Run())
	assert.Equal(t, []string{"echo never"}, ts.reader.lines)

	events := ts.events(t)
	require.NotEmpty(t, events)
	assert.Equal(t, &logger.SessionEnd{Reason: logger.EndReasonExit, Lines: 1}, events[len(events)-1])
}

func TestShell_Run_eofPrintsNewline(t *testing.T) {
	ts := newTestShell(t)

	assert.Equal(t, 0, ts.Run())
	assert.Equal(t, "/$ \n", ts.out.String())
}

func TestShell_promptTracksWorkingDirectory(t *testing.T) {
	ts := newTestShell(t, "cd /home", "cd /bin", "cd /does/not/exist", "cd /home/tester")

	ts.Run()

	assert.Equal(t, []string{"/$ ", "/home$ ", "/bin$ ", "/bin$ ", "/home/tester$ "}, ts.reader.prompts)
}

func TestShell_History(t *testing.T) {
	ts := newTestShell(t, "echo a", "", "echo b", "history -c")

	ts.Run()

	assert.Empty(t, ts.History())
	assert.Equal(t, 1, ts.reader.resets)
}
