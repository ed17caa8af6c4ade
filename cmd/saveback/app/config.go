package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/klauspost/compress/flate"
	"github.com/spf13/viper"

	"github.com/agentstation/saveback/internal/savepath"
	"github.com/agentstation/saveback/pkg/constants"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Save location
	SaveDir           string
	SteamUserID       string
	SaveDataFolder    string
	SteamUserdataRoot string
	SaveSubdir        string

	// Archive settings
	CompressionLevel int

	// Logging configuration. LogLevel is the explicit --log-level value,
	// EnvLogLevel the LOG_LEVEL fallback.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.saveback.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()
	return loadConfig(viper.New(), os.Getenv("SAVEBACK_CONFIG"))
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// The folder id keeps its historical variable name as a fallback.
	if err := v.BindEnv("save_data_folder", "SAVE_DATA_FOLDER", "SHIRENTHEWANDERER5PLUS_SAVE_DATA_FOLDER"); err != nil {
		return nil, err
	}

	v.SetDefault("steam_userdata_root", constants.DefaultSteamUserdataRoot)
	v.SetDefault("save_subdir", constants.DefaultSaveSubdir)
	v.SetDefault("compression_level", flate.DefaultCompression)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
	}

	// Read config file (a missing default file is fine)
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || configFile != "" {
			return nil, err
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Output:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		SaveDir:           v.GetString("save_dir"),
		SteamUserID:       v.GetString("steam_userid"),
		SaveDataFolder:    v.GetString("save_data_folder"),
		SteamUserdataRoot: v.GetString("steam_userdata_root"),
		SaveSubdir:        v.GetString("save_subdir"),

		CompressionLevel: v.GetInt("compression_level"),

		EnvLogLevel: v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
	}, nil
}

// SaveSettings returns the inputs for locating the save directory.
func (c *Config) SaveSettings() savepath.Settings {
	return savepath.Settings{
		SaveDir:      c.SaveDir,
		UserdataRoot: c.SteamUserdataRoot,
		UserID:       c.SteamUserID,
		Folder:       c.SaveDataFolder,
		Subdir:       c.SaveSubdir,
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
