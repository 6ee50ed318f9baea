package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadAPIConfigFile starts from the environment and overlays values set in
// the YAML file at path. Keys absent from the file keep their env value.
func LoadAPIConfigFile(path string) (APIConfig, error) {
	cfg := LoadAPIConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return APIConfig{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return APIConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}
