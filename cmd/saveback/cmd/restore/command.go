// Package restore provides the command that puts an archive back in place.
package restore

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/saveback/internal/cmd/alerts"
	"github.com/agentstation/saveback/internal/cmd/output"
	"github.com/agentstation/saveback/internal/shell"
	"github.com/agentstation/saveback/pkg/archive"
	"github.com/agentstation/saveback/pkg/errors"
)

// AppContext defines the interface that the restore command needs from the app.
type AppContext interface {
	Archives() (*archive.Manager, error)
	Logger() *zerolog.Logger
	OutputFormat() string
	NoColor() bool
}

// NewCommand creates the restore command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "restore <number|name>",
		GroupID: "core",
		Short:   "Replace the save directory with an archive",
		Long: `Restore empties the save directory and extracts the selected archive
into it. The archive is chosen by its number in "saveback list" or by its
file name.

When the save directory exists you are asked before it is overwritten,
unless --yes is given. The restore is not atomic: a failure part way
through leaves the directory partially restored.`,
		Example: `  saveback restore 3
  saveback restore remote_2024-05-17-21-08_pre-boss.zip --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			m, err := app.Archives()
			if err != nil {
				return err
			}

			writer := alerts.NewWriter(cmd.OutOrStdout(), format, app.NoColor())
			return run(cmd, m, args[0], yes, writer, app.Logger())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "overwrite an existing save directory without asking")

	return cmd
}

func run(cmd *cobra.Command, m *archive.Manager, selection string, yes bool, writer alerts.Writer, logger *zerolog.Logger) error {
	out := cmd.OutOrStdout()

	name, err := m.Select(selection)
	if err != nil {
		return err
	}

	confirmed := yes
	if !confirmed {
		exists, err := m.SaveDirExists()
		if err != nil {
			return err
		}
		if exists {
			confirmed, err = confirm(cmd.InOrStdin(), out, m.SaveDir())
			if err != nil {
				return err
			}
		}
	}

	logger.Debug().Str("archive", name).Bool("confirmed", confirmed).Msg("Restoring archive")

	err = m.RestoreBackup(name, confirmed)
	if errors.IsCancelled(err) {
		return writer.WriteAlert(alerts.NewWarning("Restoration canceled.").
			WithDetails("pass --yes to overwrite without asking"))
	}
	if err != nil {
		return err
	}

	return writer.WriteAlert(alerts.NewSuccess("Restoration completed: " + m.SaveDir()))
}

// confirm asks the overwrite question. Closed input counts as no.
func confirm(in io.Reader, out io.Writer, saveDir string) (bool, error) {
	if _, err := fmt.Fprintf(out, shell.PromptOverwrite, saveDir); err != nil {
		return false, err
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "y", nil
}
