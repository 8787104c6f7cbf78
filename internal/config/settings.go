// Package config loads the launcher settings file.
//
// Settings are an external input to the core: commands read them once at
// startup and pass the values into the scanner and launcher explicitly.
// Nothing in this repository writes the file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// SettingsName is the settings file name inside the config directory.
const SettingsName = "settings.json"

// Settings holds user-level launcher configuration. The zero value is a
// usable default: no external roots, no custom names, auto-detected
// interpreter.
type Settings struct {
	// ExternalRoots are additional application directories outside the
	// primary root. Each is validated independently during discovery.
	ExternalRoots []string `json:"external_paths"`
	// CustomNames maps an application identity to a display-name
	// override.
	CustomNames map[string]string `json:"custom_names"`
	// Python overrides the interpreter used for installs and launches.
	Python string `json:"python"`
}

// Dir returns the pylaunch config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/pylaunch if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "pylaunch"), nil
}

// Load reads the settings file from dir. A missing file yields default
// settings without an error; a malformed file is an error so the caller
// can decide whether to proceed with defaults.
func Load(dir string) (*Settings, error) {
	s := &Settings{CustomNames: make(map[string]string)}

	data, err := os.ReadFile(filepath.Join(dir, SettingsName))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if s.CustomNames == nil {
		s.CustomNames = make(map[string]string)
	}

	return s, nil
}

// DisplayName returns the human label for an application: the configured
// custom name when present, otherwise the raw name with underscores
// spaced out and each word title-cased.
func (s *Settings) DisplayName(identity, name string) string {
	if custom, ok := s.CustomNames[identity]; ok && custom != "" {
		return custom
	}
	return Humanize(name)
}

// Humanize turns a directory name like "image_resizer" into "Image
// Resizer".
func Humanize(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
