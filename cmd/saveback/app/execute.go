package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/saveback/cmd/saveback/cmd/menu"
	"github.com/agentstation/saveback/internal/cmd/output"
	"github.com/agentstation/saveback/pkg/errors"
	"github.com/agentstation/saveback/pkg/logging"
)

// Execute runs the saveback CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "saveback",
		Short:   "Back up and restore game save data",
		Version: a.version,
		Long: `Saveback archives a game's save directory into timestamped zip files
kept next to it and restores them on demand.

The save directory is taken from SAVE_DIR, or built from STEAM_USERID and
SAVE_DATA_FOLDER under the Steam userdata root. Values may come from the
environment, a .env file or ~/.saveback.yaml.

Run without a command to start the interactive menu.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setupCommand,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return menu.Run(cmd, a)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// Flag defaults come from the loaded config so env and file values
	// survive when a flag is not given.
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	flags.StringVarP(&a.config.Output, "output", "o", a.config.Output, "output format: table, json, yaml, wide")
	flags.StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("saveback {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(_ *cobra.Command, _ []string) error {
	if _, err := output.ParseFormat(a.config.Output); err != nil {
		return err
	}

	// Reinitialize logger with flag values applied
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(FormatError(err) + "\n")
		os.Exit(1)
	}
}

// FormatError renders err for the terminal. Bad flags or arguments also
// point the user at the help text.
func FormatError(err error) string {
	if errors.IsValidationError(err) || errors.IsInvalidSelection(err) {
		return err.Error() + "\nRun 'saveback --help' for usage."
	}
	return err.Error()
}
