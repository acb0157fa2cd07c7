// Package shell turns input lines into commands.
//
// The grammar is a small subset of
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html
//
// 1. The input is broken into fields on runs of whitespace. There is no
// quoting, escaping, expansion or globbing, every field is taken literally.
//
// 2. The fields "<" and ">" are redirection operators, the field after one is
// its operand: the file to read standard input from or write standard output
// to. Operators and operands are removed from the argument list.
//
// 3. The remaining fields are the command name and its arguments.
package shell

import "strings"

const (
	// RedirectIn reads standard input from the following file.
	RedirectIn = "<"
	// RedirectOut truncates or creates the following file and writes
	// standard output to it.
	RedirectOut = ">"
)

// Parse splits line into a Command.
//
// An operator with no operand is ignored. If an operator appears more than
// once, the last operand wins. A blank line gives a Command with no Args.
func Parse(line string) *Command {
	cmd := &Command{}

	fields := strings.Fields(line)
	for i := 0; i < len(fields); i++ {
		switch field := fields[i]; field {
		case RedirectIn, RedirectOut:
			if i+1 >= len(fields) {
				continue
			}

			i++
			if field == RedirectIn {
				cmd.InputFile = fields[i]
			} else {
				cmd.OutputFile = fields[i]
			}

		default:
			cmd.Args = append(cmd.Args, field)
		}
	}

	return cmd
}
