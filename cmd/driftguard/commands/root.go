package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/driftguard/driftguard/internal/config"
	"github.com/driftguard/driftguard/internal/exitcode"
	"github.com/driftguard/driftguard/internal/logger"
)

var (
	cfgFile  string
	logLevel string
	noColor  bool
	cfg      *config.Config
	log      logger.Logger

	// runExitCode is set by commands whose exit code carries meaning
	// beyond success/failure (the detect severity contract)
	runExitCode int
)

var rootCmd = &cobra.Command{
	Use:   "driftguard",
	Short: "Detect and classify infrastructure drift",
	Long: `Driftguard compares the declared infrastructure configuration against
the live cloud state, classifies the drift it finds, and suggests how to
reconcile it.

Exit codes (detect):
  0  no drift
  1  detection pipeline failed
  2  drift detected (ACCEPTABLE or HIGH)
  3  critical drift detected (security-relevant destructive change)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return exitcode.ForError(err)
	}
	return runExitCode
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.driftguard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newDetectCommand())
	rootCmd.AddCommand(newRemediateCommand())
	rootCmd.AddCommand(newVersionCommand())
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if noColor || cfg.NoColor {
		color.NoColor = true
	}

	log = logger.New(os.Stderr, cfg.LogLevel)
	return nil
}
