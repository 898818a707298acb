package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v2"
)

const DefaultConfigPath = "config.yml"

type Config struct {
	Logger Logger `yaml:"logger"`
	Vul    Vul    `yaml:"vul"`
}

type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// Vul holds the settings handed to the scanner process.
type Vul struct {
	BinaryPath              string `yaml:"binary_path"`
	ResultsFolder           string `yaml:"results_folder"`
	MinimumReportedSeverity string `yaml:"minimum_reported_severity"`
	SecretScanning          bool   `yaml:"secret_scanning"`
	OfflineScan             bool   `yaml:"offline_scan"`
	FixedOnly               bool   `yaml:"fixed_only"`
	Debug                   bool   `yaml:"debug"`
	Jobs                    int    `yaml:"jobs"`
	Server                  Server `yaml:"server"`
}

type Server struct {
	Enable bool   `yaml:"enable"`
	URL    string `yaml:"url"`
}

// ValidateConfigPath checks that path points at a file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	// an empty file decodes to io.EOF
	if err := d.Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// LoadConfig reads the configuration file. When the file was not named explicitly and
// does not exist, an empty configuration is returned and defaults apply during validation.
func LoadConfig(configPath string, explicit bool) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg := &Config{}
	if err := LoadYAML(configPath, cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}
	return cfg, nil
}
