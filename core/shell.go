package core

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/techshell/core/config"
	"github.com/josephlewis42/techshell/core/logger"
	"github.com/josephlewis42/techshell/core/vos"
)

const (
	EnvUser = "USER"

	DefaultPrompt = `\w$ `
)

var promptColor = color.New(color.FgBlue, color.Bold)

// LineReader reads the lines the shell executes.
type LineReader interface {
	// SetPrompt sets the text shown before the next line.
	SetPrompt(prompt string)

	// Readline returns the next line without its terminator. It returns
	// io.EOF at the end of input and readline.ErrInterrupt if the line was
	// abandoned.
	Readline() (string, error)
}

// historyResetter is implemented by readers that keep their own history.
type historyResetter interface {
	ResetHistory()
}

type Shell struct {
	VirtualOS vos.VOS
	Readline  LineReader

	prompt      string
	colorPrompt bool
	events      *logger.SessionLogger

	history []string
	lines   int

	// Set to true to quit the shell
	Quit bool

	toClose listCloser
}

// NewShell creates an interactive shell reading lines from the standard
// input of virtualOS.
func NewShell(virtualOS vos.VOS, cfg *config.Configuration, events *logger.SessionLogger) (*Shell, error) {
	rlConfig := &readline.Config{
		Stdin:        virtualOS.Stdin(),
		Stdout:       virtualOS.Stdout(),
		Stderr:       virtualOS.Stderr(),
		HistoryFile:  cfg.HistoryPath(),
		HistoryLimit: cfg.HistoryLimit,
	}

	if err := rlConfig.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, err
	}

	shell := newShell(virtualOS, rl, cfg, events)
	shell.toClose = append(shell.toClose, rl)
	return shell, nil
}

func newShell(virtualOS vos.VOS, reader LineReader, cfg *config.Configuration, events *logger.SessionLogger) *Shell {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Shell{
		VirtualOS:   virtualOS,
		Readline:    reader,
		prompt:      cfg.Prompt,
		colorPrompt: cfg.ColorPrompt,
		events:      events,
	}
}

// Prompt renders the prompt template against the current state of the OS.
func (s *Shell) Prompt() string {
	tmpl := s.prompt
	if tmpl == "" {
		tmpl = DefaultPrompt
	}

	pwd, err := s.VirtualOS.Getwd()
	if err != nil {
		s.reportError(err)
		pwd = ""
	}

	dir, base := pwd, path.Base(pwd)
	if pwd == "" {
		base = ""
	}

	if s.colorPrompt {
		dir = promptColor.Sprint(dir)
		base = promptColor.Sprint(base)
	}

	dollar := "$"
	if s.VirtualOS.Getuid() == 0 {
		dollar = "#"
	}

	host, _ := s.VirtualOS.Hostname()
	if i := strings.IndexByte(host, '.'); i >= 0 {
		host = host[:i]
	}

	return strings.NewReplacer(
		`\\`, `\`,
		`\u`, s.VirtualOS.Getenv(EnvUser),
		`\h`, host,
		`\w`, dir,
		`\W`, base,
		`\$`, dollar,
	).Replace(tmpl)
}

// Run reads and executes lines until the end of input or exit. The exit
// status of the shell is always 0.
func (s *Shell) Run() int {
	s.logSessionStart()

	for !s.Quit {
		s.Readline.SetPrompt(s.Prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			fmt.Fprintln(s.VirtualOS.Stdout())
			s.logEvent(&logger.SessionEnd{Reason: logger.EndReasonEOF, Lines: s.lines})
			return 0

		case errors.Is(err, readline.ErrInterrupt):
			// Interrupt clears line.
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			s.logEvent(&logger.SessionEnd{Reason: logger.EndReasonError, Lines: s.lines})
			return 0

		case strings.TrimSpace(line) == "":
			continue // empty line

		default:
			s.history = append(s.history, line)
			s.lines++
			s.RunCommand(line)
		}
	}

	s.logEvent(&logger.SessionEnd{Reason: logger.EndReasonExit, Lines: s.lines})
	return 0
}

func (s *Shell) logSessionStart() {
	host, _ := s.VirtualOS.Hostname()
	cwd, _ := s.VirtualOS.Getwd()

	s.logEvent(&logger.SessionStart{
		Hostname: host,
		Username: s.VirtualOS.Getenv(EnvUser),
		Pid:      s.VirtualOS.Getpid(),
		Cwd:      cwd,
	})
}

// History returns the lines executed this session, oldest first.
func (s *Shell) History() []string {
	return append([]string(nil), s.history...)
}

// ClearHistory forgets the lines of this session, including any kept by
// the line reader.
func (s *Shell) ClearHistory() {
	s.history = nil
	if resetter, ok := s.Readline.(historyResetter); ok {
		resetter.ResetHistory()
	}
}

func (s *Shell) Close() error {
	return s.toClose.Close()
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
