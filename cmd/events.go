package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/josephlewis42/techshell/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var eventsCmd = &cobra.Command{
	Use:     "events",
	Aliases: []string{"logs"},
	Short:   "Explore the shell event log.",
}

// openEventLog opens the named log, or the app_log of the configuration.
func openEventLog(args []string) (io.ReadCloser, error) {
	if len(args) > 0 {
		return os.Open(args[0])
	}

	configuration, err := loadConfig()
	if err != nil {
		return nil, err
	}

	return configuration.ReadAppLog()
}

type logReport interface {
	Update(le *logger.LogEntry)
}

func newReportCommand(use, short string, newReport func() logReport) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [LOG]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			fd, err := openEventLog(args)
			if err != nil {
				return err
			}
			defer fd.Close()

			report := newReport()
			if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
				return err
			}

			out, err := yaml.Marshal(report)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.AddCommand(newReportCommand("report", "Show a report of events.", func() logReport {
		return &logger.Report{}
	}))
	eventsCmd.AddCommand(newReportCommand("bugs", "Show commands that failed to run.", func() logReport {
		return logger.NewBugReport()
	}))
	eventsCmd.AddCommand(newReportCommand("sessions", "Show the commands run in each session.", func() logReport {
		return &logger.InteractionReport{}
	}))
}
