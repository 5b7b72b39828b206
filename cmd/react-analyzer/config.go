package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileName is looked up in the analyzed project's root.
const configFileName = ".react-analyzer.yml"

// fileConfig mirrors the CLI flags; flags set on the command line win
// over values from the config file.
type fileConfig struct {
	Pattern     string `yaml:"pattern"`
	Ignore      string `yaml:"ignore"`
	TestPattern string `yaml:"test_pattern"`
	Out         string `yaml:"out"`
	ReportDir   string `yaml:"report_dir"`
	DB          string `yaml:"db"`
	Workers     int    `yaml:"workers"`
}

// loadFileConfig reads .react-analyzer.yml from the project root. A
// missing file is not an error; a malformed one is.
func loadFileConfig(root string) (*fileConfig, error) {
	path := filepath.Join(root, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}
