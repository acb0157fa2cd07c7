package core

import (
	"errors"
	"log"

	"github.com/josephlewis42/techshell/core/logger"
	"github.com/josephlewis42/techshell/core/shell"
	"github.com/josephlewis42/techshell/core/vos"
)

// Execute runs one parsed command to completion.
//
// Empty and released commands do nothing. Builtins run inside the shell.
// Everything else is started as a child process and reaped before Execute
// returns. Failures are reported on the shell's stderr, never to the caller.
func (s *Shell) Execute(cmd *shell.Command) {
	if cmd.Empty() {
		return
	}

	if builtin, ok := AllBuiltins[cmd.Name()]; ok {
		status := builtin.Main(s, cmd.Args)
		s.logEvent(&logger.Builtin{Command: cmd.Args, Status: status})
		return
	}

	s.spawn(cmd)
}

// RunCommand parses and executes a single line.
func (s *Shell) RunCommand(line string) {
	cmd := shell.Parse(line)
	defer cmd.Release()

	s.Execute(cmd)
}

func (s *Shell) spawn(cmd *shell.Command) {
	attr := &vos.ProcAttr{
		Env:   s.VirtualOS.Environ(),
		Files: s.VirtualOS,
	}
	if cmd.HasRedirect() {
		attr.PreExec = redirectHook(s.VirtualOS, cmd)
	}

	proc, err := s.VirtualOS.StartProcess(cmd.Args[0], cmd.Args, attr)
	if err != nil {
		s.reportError(err)

		if errors.Is(err, vos.ErrNotFound) {
			s.logEvent(&logger.UnknownCommand{Command: cmd.Args, ErrorMessage: FormatOSError(err)})
		} else {
			s.logEvent(&logger.InvalidInvocation{Command: cmd.Args, Error: FormatOSError(err)})
		}
		return
	}

	status, err := proc.Wait()
	if err != nil {
		s.reportError(err)
	}

	s.logEvent(&logger.RunCommand{
		Command:             cmd.Args,
		ResolvedCommandPath: proc.Path(),
		InputFile:           cmd.InputFile,
		OutputFile:          cmd.OutputFile,
		ExitStatus:          status,
	})
}

func (s *Shell) logEvent(event logger.LogType) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(event); err != nil {
		log.Printf("couldn't record event: %v", err)
	}
}
