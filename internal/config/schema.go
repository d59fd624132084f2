package config

import (
	"path/filepath"
)

// Config holds application configuration
type Config struct {
	// DataDir holds the database, lock file and log file
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// DBPath overrides <data_dir>/trackboard.db
	DBPath string `yaml:"db_path" mapstructure:"db_path"`

	// UserEmail is matched against task assignee emails for "assigned to me"
	UserEmail string `yaml:"user_email" mapstructure:"user_email"`

	// UI settings
	Theme     string `yaml:"theme" mapstructure:"theme"`
	StartView string `yaml:"start_view" mapstructure:"start_view"`

	LogLevel      string `yaml:"log_level" mapstructure:"log_level"`
	Notifications bool   `yaml:"notifications" mapstructure:"notifications"`
}

// DatabasePath returns the configured database path
func (c *Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, "trackboard.db")
}

// LockPath returns the single-instance lock file path
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "trackboard.lock")
}

// LogPath returns the log file path
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "trackboard.log")
}
