// Package config loads the sdbootconf tool's own settings file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Settings is the sdbootconf.toml settings file.
type Settings struct {
	// ESP is the mount point of the EFI system partition.
	ESP string `toml:"esp"`
	// ExportFormat is the default format for the export command.
	ExportFormat string `toml:"export_format"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		ESP:          "/boot/efi",
		ExportFormat: "json",
	}
}

// Load reads settings from filename. A missing file yields the
// defaults, the same way a missing loader.conf yields the empty
// policy.
func Load(filename string) (*Settings, error) {
	s := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return s, nil
}

// Save writes the settings to filename.
func (s *Settings) Save(filename string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
