// Package config handles global configuration and backing-file resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/contacts/config.yml.
type Config struct {
	ContactsPath string `yaml:"contacts_path,omitempty"` // Backing file; ~ is expanded
	LogLevel     string `yaml:"log_level,omitempty"`     // debug, info, warn, error
	LogFormat    string `yaml:"log_format,omitempty"`    // text or json
	LogFile      string `yaml:"log_file,omitempty"`      // Append logs here instead of stderr
}

const (
	// AppDir is the directory name under XDG_CONFIG_HOME and XDG_DATA_HOME.
	AppDir = "contacts"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// ContactsFile is the default backing file name.
	ContactsFile = "contacts.json"
	// CacheDir holds the ephemeral SQLite cache, next to the backing file.
	CacheDir = "cache"
	// DBFile is the SQLite cache file name.
	DBFile = "contacts.db"

	// EnvContactsPath overrides contacts_path from the config file.
	EnvContactsPath = "CONTACTS_PATH"
)

// ConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/contacts/config.yml.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppDir, ConfigFile)
}

// DefaultContactsPath returns the default backing file location.
// Respects XDG_DATA_HOME, defaults to ~/.local/share/contacts/contacts.json.
func DefaultContactsPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ContactsFile // Fall back to the working directory
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppDir, ContactsFile)
}

// DBPath returns the SQLite cache path for a backing file.
func DBPath(contactsPath string) string {
	return filepath.Join(filepath.Dir(contactsPath), CacheDir, DBFile)
}

// Load reads the global config file.
// Returns an empty config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ContactsPath = ExpandTilde(cfg.ContactsPath)
	cfg.LogFile = ExpandTilde(cfg.LogFile)

	return &cfg, nil
}

// ResolveContactsPath picks the backing file: the flag value, then
// CONTACTS_PATH, then contacts_path from config, then the default.
func (c *Config) ResolveContactsPath(flagValue string) string {
	if flagValue != "" {
		return ExpandTilde(flagValue)
	}
	if env := os.Getenv(EnvContactsPath); env != "" {
		return ExpandTilde(env)
	}
	if c.ContactsPath != "" {
		return c.ContactsPath
	}
	return DefaultContactsPath()
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
