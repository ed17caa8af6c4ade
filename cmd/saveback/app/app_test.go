package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/saveback/pkg/errors"
	"github.com/agentstation/saveback/pkg/logging"
)

var testSaveDir = filepath.Join("/steam/userdata", "42", "1234", "remote")

func newTestApp(t *testing.T, config *Config) (*App, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	app, err := New("1.2.3", "abc123", "2024-05-17", "test",
		WithConfig(config),
		WithLogger(logging.NewNopLogger()),
		WithFs(fs),
		WithClock(testclock.NewClock(time.Date(2024, 5, 17, 21, 8, 33, 0, time.Local))),
	)
	require.NoError(t, err)
	return app, fs
}

func steamConfig() *Config {
	return &Config{
		SteamUserID:       "42",
		SaveDataFolder:    "1234",
		SteamUserdataRoot: "/steam/userdata",
		SaveSubdir:        "remote",
		CompressionLevel:  -1,
		LogOutput:         "discard",
	}
}

func execute(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNew(t *testing.T) {
	app, _ := newTestApp(t, steamConfig())
	assert.Equal(t, "1.2.3", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-05-17", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())

	_, err := New("dev", "", "", "", WithFs(nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestArchives(t *testing.T) {
	app, _ := newTestApp(t, steamConfig())

	m, err := app.Archives()
	require.NoError(t, err)
	assert.Equal(t, testSaveDir, m.SaveDir())

	again, err := app.Archives()
	require.NoError(t, err)
	assert.Same(t, m, again)
}

func TestArchivesUnconfigured(t *testing.T) {
	app, _ := newTestApp(t, &Config{LogOutput: "discard"})

	_, err := app.Archives()
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestExecute(t *testing.T) {
	app, fs := newTestApp(t, steamConfig())
	require.NoError(t, fs.MkdirAll(testSaveDir, 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(testSaveDir, "data.sav"), []byte("floor 12"), 0o644))

	out, err := execute(t, app, "", "backup", "-m", "pre-boss")
	require.NoError(t, err)
	assert.Contains(t, out, "Backup completed: ")
	assert.Contains(t, out, "remote_2024-05-17-21-08_pre-boss.zip")

	out, err = execute(t, app, "", "list", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"comment": "pre-boss"`)

	require.NoError(t, afero.WriteFile(fs, filepath.Join(testSaveDir, "data.sav"), []byte("game over"), 0o644))
	out, err = execute(t, app, "", "restore", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Restoration completed: "+testSaveDir)

	data, err := afero.ReadFile(fs, filepath.Join(testSaveDir, "data.sav"))
	require.NoError(t, err)
	assert.Equal(t, "floor 12", string(data))
}

func TestExecuteDefaultsToMenu(t *testing.T) {
	app, fs := newTestApp(t, steamConfig())
	require.NoError(t, fs.MkdirAll(testSaveDir, 0o755))

	out, err := execute(t, app, "l\nq\n")
	require.NoError(t, err)
	assert.Contains(t, out, "No ZIP files found.\n")
	assert.Contains(t, out, "Exiting the program.\n")
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	app, _ := newTestApp(t, steamConfig())

	_, err := execute(t, app, "", "list", "-o", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, FormatError(err), "Run 'saveback --help' for usage.")
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "invalid selection points at help",
			err:  errors.NewInvalidSelectionError("9", 2),
			want: "invalid selection \"9\": expected a number between 1 and 2\nRun 'saveback --help' for usage.",
		},
		{
			name: "filesystem error is printed as is",
			err:  errors.NewFilesystemError("list", "/saves", errors.New("permission denied")),
			want: "filesystem error during list of /saves: permission denied",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatError(tt.err))
		})
	}
}

func TestSetupCommandReplacesDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	app, _ := newTestApp(t, steamConfig())
	_, err := execute(t, app, "", "version", "--log-level", "error")
	require.NoError(t, err)

	assert.Equal(t, zerolog.ErrorLevel, logging.Default().GetLevel())
	assert.Equal(t, zerolog.ErrorLevel, app.Logger().GetLevel())
}

func TestVersionCommand(t *testing.T) {
	app, _ := newTestApp(t, steamConfig())

	out, err := execute(t, app, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "saveback 1.2.3\n", out)

	out, err = execute(t, app, "", "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:   abc123")
}
