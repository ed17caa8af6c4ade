package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/saveback/pkg/constants"
)

// clearEnv unsets every variable the config reads for the test's duration.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SAVE_DIR", "STEAM_USERID", "SAVE_DATA_FOLDER", "SHIRENTHEWANDERER5PLUS_SAVE_DATA_FOLDER",
		"STEAM_USERDATA_ROOT", "SAVE_SUBDIR", "COMPRESSION_LEVEL",
		"VERBOSE", "QUIET", "NO_COLOR", "OUTPUT", "LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	config, err := loadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultSteamUserdataRoot, config.SteamUserdataRoot)
	assert.Equal(t, constants.DefaultSaveSubdir, config.SaveSubdir)
	assert.Equal(t, -1, config.CompressionLevel)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.EnvLogLevel)
	assert.False(t, config.Verbose)
}

func TestLoadConfigEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("STEAM_USERID", "42")
	t.Setenv("SAVE_DATA_FOLDER", "1234")
	t.Setenv("STEAM_USERDATA_ROOT", "/steam/userdata")
	t.Setenv("VERBOSE", "true")
	t.Setenv("NO_COLOR", "1")
	t.Setenv("OUTPUT", "json")
	t.Setenv("LOG_LEVEL", "error")

	config, err := loadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "42", config.SteamUserID)
	assert.Equal(t, "1234", config.SaveDataFolder)
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "json", config.Output)
	assert.Equal(t, "error", config.EnvLogLevel)

	settings := config.SaveSettings()
	assert.Equal(t, "/steam/userdata", settings.UserdataRoot)
	assert.Equal(t, "remote", settings.Subdir)
}

func TestLoadConfigLegacyFolderVariable(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHIRENTHEWANDERER5PLUS_SAVE_DATA_FOLDER", "2319")

	config, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "2319", config.SaveDataFolder)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "saveback.yaml")
	require.NoError(t, os.WriteFile(path, []byte("save_dir: /games/remote\ncompression_level: 9\n"), 0o600))

	config, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "/games/remote", config.SaveDir)
	assert.Equal(t, 9, config.CompressionLevel)
	assert.Equal(t, path, config.ConfigFile)

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("SAVE_DIR", "/elsewhere/remote")
		config, err := loadConfig(viper.New(), path)
		require.NoError(t, err)
		assert.Equal(t, "/elsewhere/remote", config.SaveDir)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
