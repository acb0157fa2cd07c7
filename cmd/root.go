package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"

	"github.com/josephlewis42/techshell/core"
	"github.com/josephlewis42/techshell/core/config"
	"github.com/josephlewis42/techshell/core/vos"
	"github.com/spf13/cobra"
)

var cfgPath string

func configDir() (string, error) {
	if cfgPath != "" {
		return cfgPath, nil
	}
	return config.DefaultDir()
}

func loadConfig() (*config.Configuration, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	configuration, err := config.LoadOrDefault(dir)
	if errors.Is(err, fs.ErrPermission) {
		log.Println("Couldn't load config: check the permissions of", dir)
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "techsh",
	Short: "A tiny interactive command shell",
	Long: `A tiny interactive command shell.

Each line is split on whitespace into a program and its arguments. The
program is found in $PATH and run with the shell waiting for it to finish.
"< FILE" reads standard input from FILE and "> FILE" writes standard output
to FILE. The builtins cd, exit, help and history run inside the shell.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		log.SetOutput(cmd.ErrOrStderr())

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		session, err := core.NewSession(configuration, vos.NewHostOS())
		if err != nil {
			return err
		}
		defer session.Close()

		// Interrupts belong to the running program, the shell keeps going.
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt)
		defer signal.Stop(sigs)

		_, err = session.Run()
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	log.SetFlags(0)
	log.SetPrefix("[techsh] ")

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory (default is $XDG_CONFIG_HOME/techsh)")
}
