package backup_test

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/saveback/cmd/saveback/cmd/backup"
	"github.com/agentstation/saveback/internal/appcontext"
	"github.com/agentstation/saveback/internal/testutil"
	"github.com/agentstation/saveback/pkg/archive"
	"github.com/agentstation/saveback/pkg/errors"
)

func TestBackupCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteFile(t, fs, "slot1/data.sav", "floor 12")
	m, _ := testutil.NewManager(t, fs)
	app := &appcontext.Mock{ArchivesFunc: func() (*archive.Manager, error) { return m, nil }}

	out, err := testutil.Execute(backup.NewCommand(app), "", "-m", "pre-boss")
	require.NoError(t, err)
	assert.Equal(t, "✓ Backup completed: "+m.ArchivePath("remote_2024-05-17-21-08_pre-boss.zip")+"\n", out)

	archives, err := m.ListArchives()
	require.NoError(t, err)
	assert.Equal(t, []string{"remote_2024-05-17-21-08_pre-boss.zip"}, archives)
}

func TestBackupCommandJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteFile(t, fs, "slot1/data.sav", "floor 12")
	m, _ := testutil.NewManager(t, fs)
	app := &appcontext.Mock{
		ArchivesFunc:     func() (*archive.Manager, error) { return m, nil },
		OutputFormatFunc: func() string { return "json" },
	}

	out, err := testutil.Execute(backup.NewCommand(app), "")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "success", got["level"])
	assert.Equal(t, "Backup completed: "+m.ArchivePath("remote_2024-05-17-21-08.zip"), got["message"])
}

func TestBackupCommandMissingSaveDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/steam/userdata/42/1234", 0o755))
	m, _ := testutil.NewManager(t, fs)
	app := &appcontext.Mock{ArchivesFunc: func() (*archive.Manager, error) { return m, nil }}

	_, err := testutil.Execute(backup.NewCommand(app), "")
	assert.True(t, errors.IsFilesystem(err))
	assert.True(t, errors.IsNotFound(err))
}

func TestBackupCommandConfigError(t *testing.T) {
	cfgErr := errors.NewConfigError("savepath", "set SAVE_DIR", nil)
	app := &appcontext.Mock{ArchivesFunc: func() (*archive.Manager, error) { return nil, cfgErr }}

	_, err := testutil.Execute(backup.NewCommand(app), "")
	assert.ErrorIs(t, err, cfgErr)
}
