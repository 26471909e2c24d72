package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const configEnv = "MBRVIEW_CONFIG"

// Config is the tool configuration, read from a YAML file. Command-line flags take precedence.
type Config struct {
	// Output is the default output format: text, json or yaml
	Output string `yaml:"output"`
	// SectorSize overrides the logical sector size of every disk, 512 or 4096
	SectorSize int `yaml:"sector-size"`
	// ShowEmpty lists empty partition slots as well
	ShowEmpty bool `yaml:"show-empty"`
	// Hexdump prints the raw sector after the partition table
	Hexdump bool `yaml:"hexdump"`
}

func defaultConfig() Config {
	return Config{Output: outputText}
}

// configPath is $MBRVIEW_CONFIG if set, otherwise $HOME/.config/mbrview/config.yml
func configPath() string {
	if p := os.Getenv(configEnv); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "mbrview", "config.yml")
}

// readConfig reads the config file at path on top of the defaults. A missing file is not an error.
func readConfig(path string) (Config, error) {
	cfg := defaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %q: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Output {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	switch c.SectorSize {
	case 0, 512, 4096:
	default:
		return fmt.Errorf("sector size %d is not supported, use 512 or 4096", c.SectorSize)
	}
	return nil
}
