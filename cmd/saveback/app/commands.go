package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/saveback/cmd/saveback/cmd/backup"
	"github.com/agentstation/saveback/cmd/saveback/cmd/list"
	"github.com/agentstation/saveback/cmd/saveback/cmd/menu"
	"github.com/agentstation/saveback/cmd/saveback/cmd/restore"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(backup.NewCommand(a))
	rootCmd.AddCommand(restore.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(menu.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("saveback %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
