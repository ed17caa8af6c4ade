// Package testutil provides fixtures shared by command tests.
package testutil

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/saveback/pkg/archive"
	"github.com/agentstation/saveback/pkg/logging"
)

// SaveDir is the save directory used by command fixtures.
var SaveDir = filepath.FromSlash("/steam/userdata/42/1234/remote")

// Now is the fixture clock's starting time.
var Now = time.Date(2024, 5, 17, 21, 8, 33, 0, time.Local)

// NewManager returns a manager over fs with a test clock at Now.
func NewManager(t testing.TB, fs afero.Fs) (*archive.Manager, *testclock.Clock) {
	t.Helper()
	clk := testclock.NewClock(Now)
	m, err := archive.New(archive.Config{SaveDir: SaveDir},
		archive.WithFs(fs),
		archive.WithClock(clk),
		archive.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	return m, clk
}

// WriteFile creates a file below SaveDir, creating parents.
func WriteFile(t testing.TB, fs afero.Fs, rel, content string) {
	t.Helper()
	path := filepath.Join(SaveDir, filepath.FromSlash(rel))
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

// ReadFile returns the content of a file below SaveDir.
func ReadFile(t testing.TB, fs afero.Fs, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, filepath.Join(SaveDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// Execute runs cmd with args and stdin, returning what it wrote to stdout.
func Execute(cmd *cobra.Command, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
