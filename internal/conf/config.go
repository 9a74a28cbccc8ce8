// config.go: This file contains the configuration for the Tastebase application.
// It defines the settings struct and functions to load and save the settings.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// LogConfig contains settings for the optional rotating log file.
type LogConfig struct {
	Enabled bool   // true to write structured logs to a file as well
	Path    string // path to the log file
	MaxSize int    // maximum size of the log file in megabytes before rotation
	MaxAge  int    // maximum age of rotated log files in days
}

// SQLiteSettings contains settings for the SQLite database backend.
type SQLiteSettings struct {
	Enabled bool   // true to enable SQLite output
	Path    string // path to the SQLite database file
}

// MySQLSettings contains settings for the MySQL database backend.
type MySQLSettings struct {
	Enabled  bool   // true to enable MySQL output
	Username string // MySQL username
	Password string // MySQL password
	Database string // MySQL database name
	Host     string // MySQL server host
	Port     string // MySQL server port
}

// DatabaseSettings selects and configures the relational store.
type DatabaseSettings struct {
	SQLite SQLiteSettings
	MySQL  MySQLSettings
}

// HTTPSettings contains settings for the web server.
type HTTPSettings struct {
	Address string // listen address, e.g. ":8080"
}

// UploadSettings contains settings for the image upload ledger.
type UploadSettings struct {
	Path         string   // root directory for stored image files
	MaxSize      int64    // maximum upload size in bytes
	AllowedTypes []string // allowed file extensions, without dot
}

// Settings contains all application settings. It is constructed once at
// process startup and treated as immutable thereafter.
type Settings struct {
	Debug bool // true to enable debug logging

	Main struct {
		Name string // name of the service instance
	}

	Log      LogConfig
	Database DatabaseSettings
	HTTP     HTTPSettings
	Uploads  UploadSettings
}

// Load reads the configuration into a validated Settings struct.
func Load() (*Settings, error) {
	settings := &Settings{}

	// Initialize viper with defaults and optional config file
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	// Unmarshal the configuration into the settings struct
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	// Validate the settings
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	return settings, nil
}

// initViper initializes viper with defaults, search paths and env bindings.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Environment variables override file values, e.g. TASTEBASE_HTTP_ADDRESS
	viper.SetEnvPrefix("tastebase")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("fatal error reading config file: %w", err)
		}
		// No config file found, defaults and environment apply
	}

	return nil
}

// GetDefaultConfigPaths returns the directories in which a config file is
// looked up, in priority order.
func GetDefaultConfigPaths() ([]string, error) {
	var paths []string

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "tastebase"))
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "tastebase"))
	}

	// Current working directory as the last resort
	paths = append(paths, ".")

	if len(paths) == 0 {
		return nil, fmt.Errorf("no config paths available")
	}
	return paths, nil
}

// WriteDefaultConfig writes the current effective configuration to the given
// path as YAML. Used by "tastebase config init".
func WriteDefaultConfig(path string) error {
	settings := &Settings{}
	setDefaultConfig()
	if err := viper.Unmarshal(settings); err != nil {
		return fmt.Errorf("error unmarshaling defaults: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
