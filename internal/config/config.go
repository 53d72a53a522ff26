package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the persisted settings. Every field has a flag
// counterpart; flags win over the file.
type Config struct {
	Plan       string `yaml:"plan"`
	Timezone   string `yaml:"timezone"`
	TimeFormat string `yaml:"time_format"`
	DataDir    string `yaml:"data_dir"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Plan:       "Pro",
		Timezone:   "Local",
		TimeFormat: "24h",
		DataDir:    "~/.claude/projects",
	}
}

// configPath returns the path to the config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claudewatch", "config.yaml"), nil
}

// Load reads the configuration from disk, falling back to defaults when
// the file does not exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to disk.
func Save(cfg *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
