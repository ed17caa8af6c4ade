// Package backup provides the command that archives the save directory.
package backup

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/saveback/internal/cmd/alerts"
	"github.com/agentstation/saveback/internal/cmd/output"
	"github.com/agentstation/saveback/pkg/archive"
)

// AppContext defines the interface that the backup command needs from the app.
type AppContext interface {
	Archives() (*archive.Manager, error)
	Logger() *zerolog.Logger
	OutputFormat() string
	NoColor() bool
}

// NewCommand creates the backup command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:     "backup",
		GroupID: "core",
		Short:   "Archive the save directory",
		Long: `Backup compresses the whole save directory into a zip file placed next
to it, named remote_<YYYY-MM-DD-HH-mm>[_<comment>].zip.

A second backup with the same comment in the same minute replaces the first.`,
		Example: `  saveback backup                  # remote_2024-05-17-21-08.zip
  saveback backup -m pre-boss      # remote_2024-05-17-21-08_pre-boss.zip`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			m, err := app.Archives()
			if err != nil {
				return err
			}

			name, err := m.CreateBackup(comment)
			if err != nil {
				return err
			}

			writer := alerts.NewWriter(cmd.OutOrStdout(), format, app.NoColor())
			return writer.WriteAlert(alerts.NewSuccess("Backup completed: " + m.ArchivePath(name)))
		},
	}

	cmd.Flags().StringVarP(&comment, "message", "m", "", "comment appended to the archive name")

	return cmd
}
