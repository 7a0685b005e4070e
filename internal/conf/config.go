// config.go: settings struct and functions to load and save the odontosys configuration.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig contains settings for a rotating log file.
type LogConfig struct {
	Enabled  bool   // true to enable this log
	Path     string // path to log file
	MaxSize  int64  // max log file size in bytes before rotation
	Rotation string // rotation policy, "daily", "weekly" or "size"
}

// Log rotation policies.
const (
	RotationDaily  = "daily"
	RotationWeekly = "weekly"
	RotationSize   = "size"
)

// MainSettings contains top level application settings.
type MainSettings struct {
	Name string    // name of this node, used in logs
	Log  LogConfig // main log settings
}

// WebServerSettings contains settings for the HTTP API server.
type WebServerSettings struct {
	Enabled bool   // true to enable the HTTP server
	Port    string // port to listen on
	Debug   bool   // true to enable request debug logging
}

// ChartSettings describes the odontogram canvas and its background image.
type ChartSettings struct {
	CanvasWidth  int    // logical canvas width in pixels
	CanvasHeight int    // logical canvas height in pixels
	ImageWidth   int    // native width of the background chart image
	ImageHeight  int    // native height of the background chart image
	Background   string // path to the background chart image, empty for plain base
}

// MediaSettings contains settings for attached radiograph storage.
type MediaSettings struct {
	Path string // directory for uploaded radiograph files
}

// OutputSettings contains database backend settings.
type OutputSettings struct {
	SQLite struct {
		Enabled bool   // true to enable sqlite output
		Path    string // path to sqlite database
	}
	MySQL struct {
		Enabled  bool   // true to enable mysql output
		Username string // mysql username
		Password string // mysql password
		Database string // mysql database name
		Host     string // mysql host
		Port     string // mysql port
	}
}

// Settings contains all runtime settings for the application.
type Settings struct {
	Debug bool // true to enable debug mode

	Main      MainSettings
	WebServer WebServerSettings
	Chart     ChartSettings
	Media     MediaSettings
	Output    OutputSettings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
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

	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create one with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig writes the embedded default config file to the first
// default config path and loads it.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")

	defaultConfig, err := configFiles.ReadFile("config.yaml")
	if err != nil {
		return fmt.Errorf("error reading embedded config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	if err := os.WriteFile(configPath, defaultConfig, 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	log.Printf("Created default config file at: %s", configPath)
	return viper.ReadInConfig()
}

// ValidateSettings checks the loaded settings for basic consistency.
func ValidateSettings(settings *Settings) error {
	if settings.Chart.CanvasWidth <= 0 || settings.Chart.CanvasHeight <= 0 {
		return fmt.Errorf("invalid chart canvas size: %dx%d",
			settings.Chart.CanvasWidth, settings.Chart.CanvasHeight)
	}
	if settings.Chart.ImageWidth <= 0 || settings.Chart.ImageHeight <= 0 {
		return fmt.Errorf("invalid chart image size: %dx%d",
			settings.Chart.ImageWidth, settings.Chart.ImageHeight)
	}
	if settings.Output.SQLite.Enabled && settings.Output.MySQL.Enabled {
		return fmt.Errorf("only one database output may be enabled at a time")
	}
	return nil
}

// GetSettings returns the current settings instance.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting returns the current settings instance, initializing it if necessary.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			_, err := Load()
			if err != nil {
				log.Fatalf("Error loading settings: %v", err)
			}
		}
	})
	return GetSettings()
}

// GetDefaultConfigPaths returns the list of paths viper searches for config.yaml.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting user home directory: %w", err)
	}

	return []string{
		".",
		filepath.Join(homeDir, ".config", "odontosys"),
	}, nil
}

// GetBasePath expands a relative path against the working directory and
// ensures the directory exists.
func GetBasePath(path string) string {
	if path == "" {
		path = "."
	}
	if !filepath.IsAbs(path) {
		if wd, err := os.Getwd(); err == nil {
			path = filepath.Join(wd, path)
		}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		log.Printf("error creating directory %s: %v", path, err)
	}
	return path
}
