package core

import (
	"github.com/josephlewis42/techshell/core/config"
	"github.com/josephlewis42/techshell/core/logger"
	"github.com/josephlewis42/techshell/core/vos"
)

// Session owns the resources an interactive shell needs for its lifetime:
// the OS it runs against and the event log.
type Session struct {
	configuration *config.Configuration
	virtualOS     vos.VOS
	toClose       listCloser
	logger        *logger.Logger
}

// NewSession prepares a shell over virtualOS, opening the event log named
// by the configuration.
func NewSession(configuration *config.Configuration, virtualOS vos.VOS) (*Session, error) {
	var toClose listCloser

	eventLog := logger.NewDiscardLogger()
	logFd, err := configuration.OpenAppLog()
	if err != nil {
		return nil, err
	}
	if logFd != nil {
		toClose = append(toClose, logFd)
		eventLog = logger.NewJsonLinesLogRecorder(logFd)
	}

	return &Session{
		configuration: configuration,
		virtualOS:     virtualOS,
		toClose:       toClose,
		logger:        eventLog,
	}, nil
}

// Run starts the shell and blocks until it exits, returning its exit
// status.
func (s *Session) Run() (int, error) {
	fakeShell, err := NewShell(s.virtualOS, s.configuration, s.logger.NewSession())
	if err != nil {
		return 1, err
	}
	defer fakeShell.Close()

	return fakeShell.Run(), nil
}

func (s *Session) Close() error {
	return s.toClose.Close()
}
