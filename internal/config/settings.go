package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings represents the pyretype.yaml configuration consumed by the CLI.
type Settings struct {
	// Aliases maps a name to the annotation text it expands to
	// (e.g. "IntAlias": "int"). Targets are parsed with the annotation grammar.
	Aliases map[string]string `yaml:"aliases,omitempty"`

	// Dequalify maps a fully-qualified reference prefix to its display name
	// (e.g. "typing": "t" or "typing.List": "List"). An empty display name
	// removes the prefix.
	Dequalify map[string]string `yaml:"dequalify,omitempty"`

	// Cache controls the comparison cache.
	Cache CacheSettings `yaml:"cache,omitempty"`

	// Store configures the optional SQLite archive of rendered types.
	Store StoreSettings `yaml:"store,omitempty"`
}

// CacheSettings toggles memoization of hashes and comparisons.
type CacheSettings struct {
	Enabled bool `yaml:"enabled"`
}

// StoreSettings locates the type archive.
type StoreSettings struct {
	// Path is the SQLite database file. Empty disables archiving.
	Path string `yaml:"path,omitempty"`

	// Snapshot labels the snapshot new records are written into.
	// Defaults to "default".
	Snapshot string `yaml:"snapshot,omitempty"`
}

// LoadSettings reads and validates a settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	settings, err := ParseSettings(data, path)
	if err != nil {
		return nil, err
	}
	// Relative store paths are resolved against the settings file.
	if settings.Store.Path != "" && !filepath.IsAbs(settings.Store.Path) {
		settings.Store.Path = filepath.Join(filepath.Dir(path), settings.Store.Path)
	}
	return settings, nil
}

// ParseSettings parses pyretype.yaml content from bytes.
// The path argument is used only for error messages.
func ParseSettings(data []byte, path string) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := settings.validate(path); err != nil {
		return nil, err
	}
	settings.setDefaults()
	return &settings, nil
}

func (s *Settings) validate(path string) error {
	for name, target := range s.Aliases {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%s: alias with empty name", path)
		}
		if strings.TrimSpace(target) == "" {
			return fmt.Errorf("%s: alias %q has an empty target", path, name)
		}
		if strings.ContainsAny(name, "[](), ") {
			return fmt.Errorf("%s: alias %q must be a plain or dotted name", path, name)
		}
	}
	// An empty display name strips the prefix.
	for prefix := range s.Dequalify {
		if strings.TrimSpace(prefix) == "" {
			return fmt.Errorf("%s: dequalify entry with empty prefix", path)
		}
	}
	return nil
}

func (s *Settings) setDefaults() {
	if s.Aliases == nil {
		s.Aliases = map[string]string{}
	}
	if s.Dequalify == nil {
		s.Dequalify = map[string]string{}
	}
	if s.Store.Snapshot == "" {
		s.Store.Snapshot = "default"
	}
}

// FindSettings searches for pyretype.yaml starting from dir and walking up
// to parent directories. Returns "" with a nil error when none is found.
func FindSettings(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(dir, SettingsFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
