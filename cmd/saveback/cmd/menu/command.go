// Package menu provides the interactive backup and restore menu command.
package menu

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/saveback/internal/cmd/alerts"
	"github.com/agentstation/saveback/internal/cmd/output"
	"github.com/agentstation/saveback/internal/shell"
	"github.com/agentstation/saveback/pkg/archive"
	"github.com/agentstation/saveback/pkg/logging"
)

// AppContext defines the interface that the menu command needs from the app.
type AppContext interface {
	Archives() (*archive.Manager, error)
	Logger() *zerolog.Logger
	NoColor() bool
}

// NewCommand creates the menu command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "menu",
		GroupID: "core",
		Short:   "Interactive backup and restore menu",
		Long: `Menu asks repeatedly for an action:

  b  back up the save directory, with an optional comment
  r  pick an archive by number and restore it
  l  list the archives
  q  quit

This is also what runs when saveback is started without a command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd, app)
		},
	}
}

// Run starts the menu on the command's input and output streams.
func Run(cmd *cobra.Command, app AppContext) error {
	m, err := app.Archives()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	writer := alerts.NewWriter(out, output.FormatTable, app.NoColor())

	ctx := logging.WithLogger(cmd.Context(), app.Logger())
	return shell.New(m, cmd.InOrStdin(), out, shell.WithAlerts(writer)).Run(ctx)
}
