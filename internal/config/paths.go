package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath overrides the config file search
	EnvConfigPath = "PAXFLOW_CONFIG"
	// ConfigFileName is looked up in the working directory
	ConfigFileName = "paxflow.yaml"
	// ConfigDirName is the directory under XDG and /etc locations
	ConfigDirName = "paxflow"
)

// SearchPaths lists config file candidates in priority order:
// $PAXFLOW_CONFIG, ./paxflow.yaml, $XDG_CONFIG_HOME/paxflow/config.yaml,
// ~/.config/paxflow/config.yaml, /etc/paxflow/config.yaml.
// Locations whose environment variable is unset are omitted.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, ConfigFileName)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, ConfigDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the first existing candidate from SearchPaths, made
// absolute when possible, or "" if none exists
func FindConfigPath() string {
	for _, p := range SearchPaths() {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	return ""
}

// DefaultConfigPath is where -init-config writes: the XDG config home, then
// ~/.config, then the working directory
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, ConfigDirName, "config.yaml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	}
	return ConfigFileName
}

// EnsureConfigDir creates the parent directory of configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}
