// Package conf handles the configuration of the carnet data layer.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StoreSettings holds the configuration of one named embedded store.
type StoreSettings struct {
	Path string // path to the SQLite database file
}

// ExportSettings holds the configuration for JSON export output.
type ExportSettings struct {
	Path string // directory export files are written to
}

// LogSettings holds the file logging configuration.
type LogSettings struct {
	Enabled bool
	Path    string
}

// Settings contains all application settings.
type Settings struct {
	Debug bool

	Main    StoreSettings // the active client store
	Archive StoreSettings // the archived client store
	Export  ExportSettings
	Log     LogSettings
}

// Load reads the configuration into a Settings struct. A missing config file
// is not an error; defaults apply and environment variables (CARNET_*) and
// flags may override them.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}
	return settings, nil
}

func initViper() error {
	viper.SetConfigName("carnet")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("carnet")
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("fatal error reading config file: %w", err)
		}
		// No config file found, defaults apply.
	}
	return nil
}

// GetDefaultConfigPaths returns the directories searched for carnet.yaml,
// in precedence order: current directory, then the user config directory.
func GetDefaultConfigPaths() ([]string, error) {
	paths := []string{"."}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return paths, nil
	}
	return append(paths, filepath.Join(configDir, "carnet")), nil
}
