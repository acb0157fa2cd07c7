// Package logger is a standardized event logging framework for the shell.
//
// Every event is a LogEntry holding exactly one LogType. Entries are
// written as newline delimited JSON so they can be replayed into a Report.
package logger
