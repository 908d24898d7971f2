// Package config loads the CLI configuration file. Files may be JSON or
// YAML; JSON is tried first since every JSON document is also valid YAML.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the formbuilder CLI.
type Config struct {
	// StoragePath is the directory for the embedded database.
	StoragePath string `json:"storagePath" yaml:"storagePath"`

	// InMemory disables disk persistence; every run starts empty.
	InMemory bool `json:"inMemory" yaml:"inMemory"`

	// SyncWrites forces fsync on every write.
	SyncWrites bool `json:"syncWrites" yaml:"syncWrites"`
}

// Default returns the settings used when no config file is supplied.
func Default() Config {
	return Config{
		StoragePath: ".formbuilder",
		SyncWrites:  true,
	}
}

// Load reads and parses a config file. Unset fields keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML payload over the defaults.
func Parse(data []byte, source string) (Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &cfg); err == nil {
		return cfg, nil
	}

	cfg = Default()
	if err := yaml.Unmarshal(data, &cfg); err == nil {
		return cfg, nil
	}

	return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}
