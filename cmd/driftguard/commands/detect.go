package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/driftguard/driftguard/internal/app"
	"github.com/driftguard/driftguard/internal/report"
)

func newDetectCommand() *cobra.Command {
	var (
		region    string
		format    string
		outputDir string
		profile   string
	)

	cmd := &cobra.Command{
		Use:   "detect <environment>",
		Short: "Run drift detection for an environment",
		Long: `Detect runs the provisioning tool in plan mode for the given
environment, classifies any drift it finds, persists a report and exits
with the severity-mapped exit code.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			a := app.New(cmd.Context(), cfg, log, os.Stdout)
			res, err := a.Detect(cmd.Context(), app.DetectOptions{
				Environment: args[0],
				Region:      region,
				Format:      f,
				OutputDir:   outputDir,
				Profile:     profile,
			})
			if err != nil {
				return err
			}

			runExitCode = res.ExitCode
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "cloud region override")
	cmd.Flags().StringVar(&format, "format", "console", "output format (structured, yaml, human, console)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "report and artifact directory override")
	cmd.Flags().StringVar(&profile, "profile", "", "cloud credential profile override")

	return cmd
}
