package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// AppDirName is the per-user directory holding credentials, settings and sessions.
	AppDirName = ".teleripper"
	// SettingsFileName is the optional YAML settings file inside the app directory.
	SettingsFileName = "settings.yaml"
	// EnvPrefix prefixes every environment variable read by LoadFromEnv.
	EnvPrefix = "TELERIPPER_"
)

// Session backends
const (
	SessionBackendAuto    = "auto"
	SessionBackendKeyring = "keyring"
	SessionBackendFile    = "file"
)

// Config holds the application settings. Telegram API credentials live in
// a separate INI file managed by the auth package.
type Config struct {
	Download DownloadConfig `yaml:"download" json:"download"`
	Telegram TelegramConfig `yaml:"telegram" json:"telegram"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	UI       UIConfig       `yaml:"ui" json:"ui"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	Directory string `yaml:"directory" json:"directory"`
	Types     string `yaml:"types" json:"types"`
	Limit     int    `yaml:"limit" json:"limit"`
}

// TelegramConfig controls the client connection
type TelegramConfig struct {
	SessionBackend    string        `yaml:"session_backend" json:"session_backend"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int           `yaml:"burst" json:"burst"`
	PageSize          int           `yaml:"page_size" json:"page_size"`
	DialTimeout       time.Duration `yaml:"dial_timeout" json:"dial_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// UIConfig holds terminal output preferences
type UIConfig struct {
	Color         bool `yaml:"color" json:"color"`
	Notifications bool `yaml:"notifications" json:"notifications"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Download: DownloadConfig{
			Directory: "downloaded_media",
			Types:     "all",
			Limit:     0,
		},
		Telegram: TelegramConfig{
			SessionBackend:    SessionBackendAuto,
			RequestsPerSecond: 2,
			Burst:             5,
			PageSize:          100,
			DialTimeout:       30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		UI: UIConfig{
			Color:         true,
			Notifications: false,
		},
	}
}

// AppDir returns ~/.teleripper.
func AppDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, AppDirName), nil
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if dir := os.Getenv(EnvPrefix + "DOWNLOAD_DIR"); dir != "" {
		c.Download.Directory = dir
	}
	if types := os.Getenv(EnvPrefix + "TYPE"); types != "" {
		c.Download.Types = types
	}
	if limit := os.Getenv(EnvPrefix + "LIMIT"); limit != "" {
		val, err := strconv.Atoi(limit)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sLIMIT: %w", EnvPrefix, err))
		} else {
			c.Download.Limit = val
		}
	}

	if backend := os.Getenv(EnvPrefix + "SESSION_BACKEND"); backend != "" {
		c.Telegram.SessionBackend = backend
	}
	if rps := os.Getenv(EnvPrefix + "REQUESTS_PER_SECOND"); rps != "" {
		val, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sREQUESTS_PER_SECOND: %w", EnvPrefix, err))
		} else {
			c.Telegram.RequestsPerSecond = val
		}
	}
	if timeout := os.Getenv(EnvPrefix + "DIAL_TIMEOUT"); timeout != "" {
		val, err := time.ParseDuration(timeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sDIAL_TIMEOUT: %w", EnvPrefix, err))
		} else {
			c.Telegram.DialTimeout = val
		}
	}

	if logLevel := os.Getenv(EnvPrefix + "LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv(EnvPrefix + "LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	if os.Getenv("NO_COLOR") != "" {
		c.UI.Color = false
	}
	if notify := os.Getenv(EnvPrefix + "NOTIFICATIONS"); notify != "" {
		c.UI.Notifications = strings.EqualFold(notify, "true") || notify == "1"
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file. An empty path means the
// default location; a missing default file is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// DefaultPath returns ~/.teleripper/settings.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	dir, err := AppDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, SettingsFileName)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Download.Directory == "" {
		errs = append(errs, errors.New("download directory is required"))
	}
	if c.Download.Limit < 0 {
		errs = append(errs, errors.New("message limit cannot be negative"))
	}
	validTypes := map[string]bool{
		"all": true, "videos": true, "images": true, "documents": true, "audio": true, "archives": true,
	}
	if !validTypes[strings.ToLower(c.Download.Types)] {
		errs = append(errs, fmt.Errorf("invalid media type %q", c.Download.Types))
	}

	switch c.Telegram.SessionBackend {
	case SessionBackendAuto, SessionBackendKeyring, SessionBackendFile:
	default:
		errs = append(errs, fmt.Errorf("invalid session backend %q", c.Telegram.SessionBackend))
	}
	if c.Telegram.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("requests per second cannot be negative"))
	}
	if c.Telegram.Burst <= 0 {
		errs = append(errs, errors.New("burst must be positive"))
	}
	if c.Telegram.PageSize <= 0 || c.Telegram.PageSize > 100 {
		errs = append(errs, errors.New("page size must be between 1 and 100"))
	}
	if c.Telegram.DialTimeout <= 0 {
		errs = append(errs, errors.New("dial timeout must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags applies flags that were explicitly set on the command line
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if dir, ok := flags["dir"].(string); ok && dir != "" {
		c.Download.Directory = dir
	}
	if types, ok := flags["type"].(string); ok && types != "" {
		c.Download.Types = types
	}
	if limit, ok := flags["limit"].(int); ok {
		c.Download.Limit = limit
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if noColor, ok := flags["no-color"].(bool); ok && noColor {
		c.UI.Color = false
	}
	if notify, ok := flags["notifications"].(bool); ok {
		c.UI.Notifications = notify
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")
	if dir, err := AppDir(); err == nil {
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
