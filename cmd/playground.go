package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/josephlewis42/techshell/core"
	"github.com/josephlewis42/techshell/core/config"
	"github.com/josephlewis42/techshell/core/vos"
	"github.com/josephlewis42/techshell/core/vos/vostest"
	"github.com/spf13/cobra"
)

// playgroundCmd runs the shell over an in-memory OS for testing
var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Run the shell against an in-memory filesystem with a few fake programs.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		dir, err := os.MkdirTemp("", "playground")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)

		playgroundLogger := log.New(cmd.ErrOrStderr(), "[playground] ", 0)
		cfg, err := config.Initialize(dir, playgroundLogger)
		if err != nil {
			return err
		}

		// Mark the prompt to help differentiate the playground from a real
		// shell.
		cfg.Prompt = `playground:\w\$ `
		cfg.AppLog = "events.log"

		programs := vostest.DefaultPrograms()
		virtOS := vostest.NewDeterministicOS(programs, vos.NewHostIO())

		session, err := core.NewSession(cfg, virtOS)
		if err != nil {
			return err
		}
		defer session.Close()

		playgroundLogger.Printf("Programs: %s\n", strings.Join(vostest.ProgramNames(programs), ", "))
		playgroundLogger.Printf("Logging to: file://%s\n", dir)
		playgroundLogger.Printf("See logs with: tail -f %s\n", filepath.Join(dir, cfg.AppLog))
		playgroundLogger.Println(strings.Repeat("=", 80))

		exitCode, err := session.Run()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exit code: %d\n", exitCode)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}
