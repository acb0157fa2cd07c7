package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

func NewBugReport() *BugReport {
	return &BugReport{
		InvalidInvocations: NewPathCounter("command", "error"),
		UnknownCommands:    NewPathCounter("command", "error"),
		FailedCommands:     NewPathCounter("command", "status"),
	}
}

// BugReport pulls events that are likely mistakes by the user or missing
// programs on the host.
type BugReport struct {
	LogEntries int `json:"log_entries"`

	InvalidInvocations *PathCounter `json:"invalid_invocations"`
	UnknownCommands    *PathCounter `json:"unknown_commands"`
	FailedCommands     *PathCounter `json:"failed_commands"`
}

func (r *BugReport) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *UnknownCommand:
		r.UnknownCommands.Increment(firstArg(event.Command), event.ErrorMessage)
	case *InvalidInvocation:
		r.InvalidInvocations.Increment(firstArg(event.Command), event.Error)
	case *RunCommand:
		if event.ExitStatus != 0 {
			r.FailedCommands.Increment(firstArg(event.Command), fmt.Sprint(event.ExitStatus))
		}
	}
}

type InteractionReport struct {
	// Map of sessionID -> interactions
	interactions map[string]*InteractiveSession
}

type InteractiveSession struct {
	Hostname   string    `json:"hostname,omitempty"`
	Username   string    `json:"username,omitempty"`
	StartDir   string    `json:"start_dir,omitempty"`
	LogEntries int       `json:"log_entries"`
	EndReason  EndReason `json:"end_reason,omitempty"`

	Commands []string `json:"commands"`
}

func (i *InteractiveSession) Update(le *LogEntry) {
	i.LogEntries++

	switch event := le.GetLogType().(type) {
	case *SessionStart:
		i.Hostname = event.Hostname
		i.Username = event.Username
		i.StartDir = event.Cwd
	case *SessionEnd:
		i.EndReason = event.Reason
	case *RunCommand:
		i.Commands = append(i.Commands, strings.Join(event.Command, " "))
	case *UnknownCommand:
		i.Commands = append(i.Commands, strings.Join(event.Command, " "))
	case *InvalidInvocation:
		i.Commands = append(i.Commands, strings.Join(event.Command, " "))
	case *Builtin:
		i.Commands = append(i.Commands, strings.Join(event.Command, " "))
	}
}

func (i *InteractionReport) init() {
	if i.interactions == nil {
		i.interactions = make(map[string]*InteractiveSession)
	}
}

// MarshalJSON implemnts custom JSON marshaler.
func (i *InteractionReport) MarshalJSON() ([]byte, error) {
	i.init()

	return json.Marshal(i.interactions)
}

func (i *InteractionReport) Update(le *LogEntry) {
	i.init()

	sessionID := le.GetSessionId()
	if sessionID == "" {
		return
	}
	report, ok := i.interactions[sessionID]
	if !ok {
		report = &InteractiveSession{}
		i.interactions[sessionID] = report
	}

	report.Update(le)
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Session           SessionReport           `json:"session_report"`
	RunCommand        RunCommandReport        `json:"run_command_report"`
	UnknownCommand    UnknownCommandReport    `json:"unknown_command_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
	Builtin           BuiltinReport           `json:"builtin_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *SessionStart:
		r.Session.Started++
	case *SessionEnd:
		r.Session.update(event)
	case *RunCommand:
		r.RunCommand.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *InvalidInvocation:
		r.InvalidInvocation.update(event)
	case *Builtin:
		r.Builtin.update(event)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type SessionReport struct {
	Started int `json:"started"`
	// Reasons sessions ended and their counts.
	EndReasons StrCounter `json:"end_reasons"`
	// Total lines read across sessions.
	Lines int `json:"lines"`
}

func (r *SessionReport) update(se *SessionEnd) {
	r.EndReasons.Increment(string(se.Reason))
	r.Lines += se.Lines
}

type RunCommandReport struct {
	// Name of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_names"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Exit statuses of the commands
	ExitStatuses StrCounter `json:"exit_statuses"`
	// Number of commands with a redirected stream
	Redirected int `json:"redirected"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	r.ResolvedCommandPaths.Increment(rc.ResolvedCommandPath)
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
	r.ExitStatuses.Increment(fmt.Sprint(rc.ExitStatus))
	if rc.InputFile != "" || rc.OutputFile != "" {
		r.Redirected++
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type InvalidInvocationReport struct {
	CommandNames StrCounter `json:"command_counts"`
	Errors       StrCounter `json:"errors"`
}

func (r *InvalidInvocationReport) update(logEntry *InvalidInvocation) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
	r.Errors.Increment(logEntry.Error)
}

type BuiltinReport struct {
	CommandNames StrCounter `json:"command_counts"`
	Failures     int        `json:"failures"`
}

func (r *BuiltinReport) update(b *Builtin) {
	if len(b.Command) > 0 {
		r.CommandNames.Increment(b.Command[0])
	}
	if b.Status != 0 {
		r.Failures++
	}
}

func firstArg(command []string) string {
	if len(command) == 0 {
		return ""
	}
	return command[0]
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of times each combination of column values
// was seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
