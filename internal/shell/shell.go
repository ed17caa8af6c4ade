// Package shell implements the interactive backup and restore menu.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/saveback/internal/cmd/alerts"
	"github.com/agentstation/saveback/internal/cmd/output"
	"github.com/agentstation/saveback/pkg/errors"
	"github.com/agentstation/saveback/pkg/logging"
)

// Signal tells the menu loop whether to keep going.
type Signal int

const (
	// Continue asks the loop for another action.
	Continue Signal = iota
	// Stop ends the loop.
	Stop
)

// String returns the signal name.
func (s Signal) String() string {
	if s == Stop {
		return "stop"
	}
	return "continue"
}

// Menu prompts.
const (
	PromptAction  = "Select Backup (b), Restore (r), List ZIPs (l), or Quit (q): "
	PromptComment = "Enter a comment for the backup: "
	PromptNumber  = "Enter the number: "
	// PromptOverwrite is a format string taking the save directory.
	PromptOverwrite = "%s already exists. Do you want to overwrite it? (y/n): "
)

// Archiver is the subset of the archive manager the menu drives.
type Archiver interface {
	SaveDir() string
	ArchivePath(name string) string
	ListArchives() ([]string, error)
	CreateBackup(comment string) (string, error)
	SaveDirExists() (bool, error)
	Select(input string) (string, error)
	RestoreBackup(name string, overwriteConfirmed bool) error
}

// Shell reads menu choices from in and writes results to out.
type Shell struct {
	archiver Archiver
	in       *bufio.Reader
	out      io.Writer
	alerts   alerts.Writer
}

// Option configures a Shell.
type Option func(*Shell)

// WithAlerts sets where failures are reported. The default writes plain
// alerts to the shell's output.
func WithAlerts(w alerts.Writer) Option {
	return func(s *Shell) {
		if w != nil {
			s.alerts = w
		}
	}
}

// New returns a Shell driving archiver.
func New(archiver Archiver, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		archiver: archiver,
		in:       bufio.NewReader(in),
		out:      out,
	}
	s.alerts = alerts.NewFormatWriter(out, output.FormatTable)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user quits, input ends or ctx is done.
// Cancellation is observed between actions.
func (s *Shell) Run(ctx context.Context) error {
	ctx = logging.WithSaveDir(ctx, s.archiver.SaveDir())
	logger := logging.Ctx(ctx)
	logger.Debug().Msg("Starting menu")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		action, ok, err := s.prompt(PromptAction)
		if err != nil {
			return err
		}
		if !ok {
			logger.Debug().Msg("Input closed, leaving menu")
			return nil
		}

		sig, err := s.Dispatch(ctx, action)
		if err != nil {
			return err
		}
		if sig == Stop {
			return nil
		}
	}
}

// Dispatch runs one menu action. Failures of the archive operations are
// reported to the user and do not end the menu; the returned error is
// reserved for broken input or output.
func (s *Shell) Dispatch(ctx context.Context, action string) (Signal, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "q":
		return Stop, s.println("Exiting the program.")
	case "b":
		return s.backup(logging.WithOperation(ctx, "backup"))
	case "r":
		return s.restore(logging.WithOperation(ctx, "restore"))
	case "l":
		return s.list(logging.WithOperation(ctx, "list"))
	default:
		return Continue, s.println("Invalid choice. Please select 'b', 'r', 'l', or 'q'.")
	}
}

func (s *Shell) backup(ctx context.Context) (Signal, error) {
	comment, ok, err := s.prompt(PromptComment)
	if err != nil || !ok {
		return Stop, err
	}

	name, err := s.archiver.CreateBackup(comment)
	if err != nil {
		return s.fail(ctx, "Backup failed", err)
	}
	return Continue, s.printf("Backup completed: %s\n", s.archiver.ArchivePath(name))
}

func (s *Shell) list(ctx context.Context) (Signal, error) {
	names, err := s.archiver.ListArchives()
	if err != nil {
		return s.fail(ctx, "Listing failed", err)
	}
	if len(names) == 0 {
		return Continue, s.println("No ZIP files found.")
	}
	if err := s.println("ZIP files:"); err != nil {
		return Continue, err
	}
	return Continue, s.enumerate(names)
}

func (s *Shell) restore(ctx context.Context) (Signal, error) {
	names, err := s.archiver.ListArchives()
	if err != nil {
		return s.fail(ctx, "Listing failed", err)
	}
	if len(names) == 0 {
		return Continue, s.println("No ZIP files found for restoration.")
	}

	if err := s.println("Please select a ZIP file to restore:"); err != nil {
		return Continue, err
	}
	if err := s.enumerate(names); err != nil {
		return Continue, err
	}

	choice, ok, err := s.prompt(PromptNumber)
	if err != nil || !ok {
		return Stop, err
	}
	if strings.EqualFold(choice, "q") {
		return Stop, s.println("Exiting the program.")
	}

	name, err := s.archiver.Select(choice)
	if errors.IsInvalidSelection(err) {
		return Continue, s.println("Invalid input.")
	}
	if err != nil {
		return s.fail(ctx, "Restore failed", err)
	}
	ctx = logging.WithArchive(ctx, name)

	exists, err := s.archiver.SaveDirExists()
	if err != nil {
		return s.fail(ctx, "Restore failed", err)
	}

	confirmed := false
	if exists {
		answer, ok, err := s.prompt(fmt.Sprintf(PromptOverwrite, s.archiver.SaveDir()))
		if err != nil || !ok {
			return Stop, err
		}
		confirmed = strings.ToLower(answer) == "y"
	}

	err = s.archiver.RestoreBackup(name, confirmed)
	switch {
	case errors.IsCancelled(err):
		return Continue, s.println("Restoration canceled.")
	case err != nil:
		return s.fail(ctx, "Restore failed", err)
	}
	return Continue, s.printf("Restoration completed: %s\n", s.archiver.SaveDir())
}

// fail reports an archive operation error and keeps the menu running.
func (s *Shell) fail(ctx context.Context, message string, err error) (Signal, error) {
	logging.Ctx(ctx).Error().Err(err).Msg(message)
	alert := alerts.NewError(message).WithError(err)
	if errors.IsNotFound(err) {
		alert.WithDetails("check the save location settings (SAVE_DIR, or STEAM_USERID and SAVE_DATA_FOLDER)")
	}
	return Continue, s.alerts.WriteAlert(alert)
}

func (s *Shell) enumerate(names []string) error {
	for i, name := range names {
		if err := s.printf("%d. %s\n", i+1, name); err != nil {
			return err
		}
	}
	return nil
}

// prompt writes label and reads one trimmed line. ok is false once input
// is exhausted and nothing was typed.
func (s *Shell) prompt(label string) (string, bool, error) {
	if _, err := io.WriteString(s.out, label); err != nil {
		return "", false, err
	}

	line, err := s.in.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			_ = s.println("")
			return "", false, nil
		}
		err = nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(line), true, nil
}

func (s *Shell) println(line string) error {
	_, err := fmt.Fprintln(s.out, line)
	return err
}

func (s *Shell) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(s.out, format, args...)
	return err
}
