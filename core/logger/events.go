package logger

// LogEntry is a single logged event.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionId       string `json:"session_id,omitempty"`

	SessionStart      *SessionStart      `json:"session_start,omitempty"`
	SessionEnd        *SessionEnd        `json:"session_end,omitempty"`
	RunCommand        *RunCommand        `json:"run_command,omitempty"`
	UnknownCommand    *UnknownCommand    `json:"unknown_command,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
	Builtin           *Builtin           `json:"builtin,omitempty"`
}

// LogType is implemented by every event that can be stored in a LogEntry.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry, nil if there is none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le == nil:
		return nil
	case le.SessionStart != nil:
		return le.SessionStart
	case le.SessionEnd != nil:
		return le.SessionEnd
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.InvalidInvocation != nil:
		return le.InvalidInvocation
	case le.Builtin != nil:
		return le.Builtin
	default:
		return nil
	}
}

// GetSessionId returns the ID of the session that logged the entry.
func (le *LogEntry) GetSessionId() string {
	if le == nil {
		return ""
	}
	return le.SessionId
}

// SessionStart is logged once the shell is ready to read its first line.
type SessionStart struct {
	Hostname string `json:"hostname,omitempty"`
	Username string `json:"username,omitempty"`
	Pid      int    `json:"pid"`
	Cwd      string `json:"cwd,omitempty"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// EndReason describes why a session ended.
type EndReason string

const (
	EndReasonEOF   EndReason = "eof"
	EndReasonExit  EndReason = "exit"
	EndReasonError EndReason = "read_error"
)

// SessionEnd is logged when the read loop finishes.
type SessionEnd struct {
	Reason EndReason `json:"reason"`
	// Number of non-empty lines read.
	Lines int `json:"lines"`
}

func (e *SessionEnd) setOn(le *LogEntry) { le.SessionEnd = e }

// RunCommand is logged after an external program is reaped.
type RunCommand struct {
	Command             []string `json:"command"`
	ResolvedCommandPath string   `json:"resolved_command_path"`
	InputFile           string   `json:"input_file,omitempty"`
	OutputFile          string   `json:"output_file,omitempty"`
	ExitStatus          int      `json:"exit_status"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// UnknownCommand is logged when no program could be found for a command.
type UnknownCommand struct {
	Command      []string `json:"command"`
	ErrorMessage string   `json:"error_message"`
}

func (e *UnknownCommand) setOn(le *LogEntry) { le.UnknownCommand = e }

// InvalidInvocation is logged when a command couldn't start for any reason
// other than a missing program, e.g. a failed redirection or builtin misuse.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (e *InvalidInvocation) setOn(le *LogEntry) { le.InvalidInvocation = e }

// Builtin is logged when the shell runs a builtin itself.
type Builtin struct {
	Command []string `json:"command"`
	Status  int      `json:"status"`
}

func (e *Builtin) setOn(le *LogEntry) { le.Builtin = e }
