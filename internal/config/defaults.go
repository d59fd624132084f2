package config

import (
	"os"

	"github.com/dori/trackboard/internal/db"
)

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir:       db.DefaultDataDir(),
		Theme:         "nord",
		StartView:     "dashboard",
		LogLevel:      "info",
		Notifications: true,
	}
}

// WriteDefault writes a commented default configuration file
func WriteDefault(path string) error {
	content := `# trackboard configuration

# Where the database, lock file and log live
# data_dir: ~/.local/share/trackboard

# Used by the "assigned to me" task filter
user_email: ""

# nord, dracula, gruvbox, catppuccin
theme: nord

# dashboard, projects or tasks
start_view: dashboard

# trace, debug, info, warn, error
log_level: info

# Desktop notification when a project reaches 100%
notifications: true
`
	return os.WriteFile(path, []byte(content), 0644)
}
