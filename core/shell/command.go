package shell

import "strings"

// Command is one parsed input line. It is owned by whoever parsed it and
// must be released once it has been executed.
type Command struct {
	// Args holds the program or builtin name followed by its arguments.
	// Redirection operators and their operands never appear here.
	Args []string
	// InputFile replaces standard input when non-empty.
	InputFile string
	// OutputFile replaces standard output when non-empty.
	OutputFile string

	released bool
}

// Empty is true if there is nothing to execute.
func (c *Command) Empty() bool {
	return c == nil || c.released || len(c.Args) == 0
}

// Name returns the program or builtin name, or "" for an empty command.
func (c *Command) Name() string {
	if c.Empty() {
		return ""
	}
	return c.Args[0]
}

// HasRedirect is true if either standard stream gets replaced.
func (c *Command) HasRedirect() bool {
	return c != nil && (c.InputFile != "" || c.OutputFile != "")
}

// Release drops everything the command holds. Calls after the first are
// no-ops, as is executing a released command.
func (c *Command) Release() {
	if c == nil || c.released {
		return
	}

	c.Args = nil
	c.InputFile = ""
	c.OutputFile = ""
	c.released = true
}

// Released reports whether Release was called.
func (c *Command) Released() bool {
	return c != nil && c.released
}

// String renders the command back into a line that parses to the same
// command.
func (c *Command) String() string {
	if c == nil || c.released {
		return ""
	}

	parts := append([]string{}, c.Args...)
	if c.InputFile != "" {
		parts = append(parts, RedirectIn, c.InputFile)
	}
	if c.OutputFile != "" {
		parts = append(parts, RedirectOut, c.OutputFile)
	}
	return strings.Join(parts, " ")
}
