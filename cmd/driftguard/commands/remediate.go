package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/driftguard/driftguard/internal/app"
)

func newRemediateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remediate <report-path>",
		Short: "Show remediation guidance from a stored drift report",
		Long: `Remediate reads a previously persisted structured drift report and
renders its remediation guidance. It performs no cloud calls and never
modifies infrastructure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.New(cmd.Context(), cfg, log, os.Stdout)
			return a.Remediate(args[0])
		},
	}
}
