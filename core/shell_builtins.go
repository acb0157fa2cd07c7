package core

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/pborman/getopt/v2"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

// ShellBuiltin is a command run by the shell itself rather than in a child
// process. Builtins ignore redirection.
type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// BuiltinNames returns the sorted names of every builtin.
func BuiltinNames() []string {
	var names []string
	for name := range AllBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cd is the cd shell builtin, it takes exactly one directory.
func Cd(s *Shell, args []string) int {
	switch len(args) {
	case 1:
		fmt.Fprintf(s.VirtualOS.Stderr(), "%s: missing argument\n", args[0])
		return 1
	case 2:
		if err := s.VirtualOS.Chdir(args[1]); err != nil {
			s.reportError(err)
			return 1
		}
	default:
		fmt.Fprintf(s.VirtualOS.Stderr(), "%s: too many arguments\n", args[0])
		return 1
	}
	return 0
}

// Exit quits the shell
func Exit(s *Shell, args []string) int {
	s.Quit = true
	return 0
}

func History(s *Shell, args []string) int {
	opts := getopt.New()
	clearOpt := opts.Bool('c', "clear the history by deleting all entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt || opts.NArgs() > 0 {
		w := s.VirtualOS.Stderr()
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "usage: history [-c]")
		fmt.Fprintln(w, "Display the history list with line numbers.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		if *helpOpt && err == nil {
			return 0
		}
		return 1
	}

	if *clearOpt {
		s.ClearHistory()
		return 0
	}

	for i, line := range s.history {
		fmt.Fprintf(s.VirtualOS.Stdout(), "%5d  %s\n", i+1, line)
	}
	return 0
}

func Help(s *Shell, args []string) int {
	opts := getopt.New()
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.VirtualOS.Stderr()
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "usage: help")
		fmt.Fprintln(w, "Display information about builtin commands.")
		if err != nil {
			return 1
		}
		return 0
	}

	w := s.VirtualOS.Stdout()
	bold := color.New(color.Bold)
	bold.Fprintln(w, "techsh")
	fmt.Fprintln(w, "These shell commands are defined internally.  Type `help' to see this list.")
	fmt.Fprintln(w, "Any other command is run as a program found in $PATH.")
	fmt.Fprintln(w, "Use `< FILE' to read input from FILE and `> FILE' to write output to FILE.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Builtins:")
	fmt.Fprintln(w)

	for _, name := range BuiltinNames() {
		fmt.Fprintf(w, "  %s\n", name)
	}

	return 0
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["help"] = ShellBuiltinFunc(Help)
	AllBuiltins["history"] = ShellBuiltinFunc(History)
}
