// Package vos is the operating system seen by the shell: environment,
// standard streams, filesystem, working directory and process creation.
//
// HostOS backs it with the real machine, vostest with an in-memory one.
package vos

// VNetwork holds the network identity of the OS.
type VNetwork interface {
	Hostname() (string, error)
}

// VProc holds the state of the calling process.
type VProc interface {
	// Args returns the command line of the process, Args()[0] is its name.
	Args() []string

	// Getpid returns the process ID of the caller.
	Getpid() int

	// Getuid returns the numeric user ID of the caller.
	Getuid() int

	// Getwd returns the current working directory. It is queried from the OS
	// each time and never cached.
	Getwd() (string, error)

	// Chdir changes the working directory of the calling process.
	Chdir(dir string) error
}

// VOS provides a virtual OS interface.
type VOS interface {
	VNetwork
	VEnv
	VIO
	VProc
	VFS

	// StartProcess starts a new process running the program name, resolved
	// through the PATH of the OS, with argv as its command line. It does not
	// wait for the process; call Wait on the result to reap it.
	StartProcess(name string, argv []string, attr *ProcAttr) (Process, error)
}
