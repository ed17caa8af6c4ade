// Package list provides the command that shows the archive catalog.
package list

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/saveback/internal/cmd/alerts"
	"github.com/agentstation/saveback/internal/cmd/output"
	"github.com/agentstation/saveback/pkg/archive"
)

// AppContext defines the interface that the list command needs from the app.
type AppContext interface {
	Archives() (*archive.Manager, error)
	Logger() *zerolog.Logger
	OutputFormat() string
	NoColor() bool
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var withDigests bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		GroupID: "core",
		Short:   "List archives next to the save directory",
		Long: `List shows every zip file in the save directory's parent, numbered in
the order "saveback restore" accepts.

Names that follow the backup naming convention also show when they were
taken and their comment.`,
		Example: `  saveback list
  saveback list --digest -o wide
  saveback list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := app.Archives()
			if err != nil {
				return err
			}

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			infos, err := m.Describe(withDigests)
			if err != nil {
				return err
			}

			app.Logger().Debug().Int("count", len(infos)).Str("format", string(format)).Msg("Listing archives")

			if len(infos) == 0 && format.IsTable() {
				writer := alerts.NewWriter(cmd.OutOrStdout(), format, app.NoColor())
				return writer.WriteAlert(alerts.NewInfo("No ZIP files found."))
			}
			return output.FormatArchives(cmd.OutOrStdout(), infos, format, m.Now())
		},
	}

	cmd.Flags().BoolVar(&withDigests, "digest", false, "compute the sha256 digest of each archive")

	return cmd
}
