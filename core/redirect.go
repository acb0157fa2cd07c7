package core

import (
	"os"

	"github.com/josephlewis42/techshell/core/shell"
	"github.com/josephlewis42/techshell/core/vos"
)

// OutputFileMode is the permission of files created by output redirection,
// before the umask.
const OutputFileMode os.FileMode = 0644

// redirectHook swaps the standard streams of a new process for the files
// named by cmd. Input is opened before output, and the first failure aborts
// the process before its program is looked up.
func redirectHook(fs vos.VFS, cmd *shell.Command) vos.PreExecFunc {
	inputFile, outputFile := cmd.InputFile, cmd.OutputFile

	return func(files *vos.ProcFiles) error {
		if inputFile != "" {
			fd, err := fs.OpenFile(inputFile, os.O_RDONLY, 0)
			if err != nil {
				return err
			}
			files.CloseAfterWait(fd)
			files.Stdin = fd
		}

		if outputFile != "" {
			fd, err := fs.OpenFile(outputFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, OutputFileMode)
			if err != nil {
				return err
			}
			files.CloseAfterWait(fd)
			files.Stdout = fd
		}

		return nil
	}
}
