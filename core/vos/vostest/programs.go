package vostest

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/josephlewis42/techshell/core/vos"
)

// Echo writes its arguments separated by spaces.
func Echo(virtOS vos.VOS) int {
	fmt.Fprintln(virtOS.Stdout(), strings.Join(virtOS.Args()[1:], " "))
	return 0
}

// Cat copies the named files, or stdin when there are none, to stdout.
func Cat(virtOS vos.VOS) int {
	args := virtOS.Args()[1:]
	if len(args) == 0 {
		if _, err := io.Copy(virtOS.Stdout(), virtOS.Stdin()); err != nil {
			fmt.Fprintf(virtOS.Stderr(), "cat: %v\n", err)
			return 1
		}
		return 0
	}

	for _, arg := range args {
		fd, err := virtOS.Open(arg)
		if err != nil {
			fmt.Fprintf(virtOS.Stderr(), "cat: %v\n", err)
			return 1
		}

		io.Copy(virtOS.Stdout(), fd)
		fd.Close()
	}

	return 0
}

// Pwd prints the working directory.
func Pwd(virtOS vos.VOS) int {
	pwd, err := virtOS.Getwd()
	if err != nil {
		fmt.Fprintf(virtOS.Stderr(), "pwd: %v\n", err)
		return 1
	}
	fmt.Fprintln(virtOS.Stdout(), pwd)
	return 0
}

// Ls prints the sorted entries of the named directory, or the working
// directory, one per line.
func Ls(virtOS vos.VOS) int {
	dir := "."
	if args := virtOS.Args(); len(args) > 1 {
		dir = args[1]
	}

	fd, err := virtOS.Open(dir)
	if err != nil {
		fmt.Fprintf(virtOS.Stderr(), "ls: %v\n", err)
		return 2
	}
	defer fd.Close()

	names, err := fd.Readdirnames(-1)
	if err != nil {
		fmt.Fprintf(virtOS.Stderr(), "ls: %v\n", err)
		return 2
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintln(virtOS.Stdout(), name)
	}
	return 0
}

// True does nothing, successfully.
func True(vos.VOS) int {
	return 0
}

// False does nothing, unsuccessfully.
func False(vos.VOS) int {
	return 1
}

// DefaultPrograms returns the programs installed in the playground.
func DefaultPrograms() map[string]vos.ProcessFunc {
	return map[string]vos.ProcessFunc{
		"cat":   Cat,
		"echo":  Echo,
		"false": False,
		"ls":    Ls,
		"pwd":   Pwd,
		"true":  True,
	}
}
