package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// DefaultConfigPath is used when neither a flag nor SCANIO_CHECKSTYLE_CONFIG names a config file.
const DefaultConfigPath = "config.yml"

type Config struct {
	Logger     Logger     `yaml:"logger"`
	Checkstyle Checkstyle `yaml:"checkstyle"`
}

type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// Checkstyle holds defaults for the parse command; command line flags take precedence.
type Checkstyle struct {
	SourceFolder   string `yaml:"source_folder"`
	Format         string `yaml:"format"`
	Threads        int    `yaml:"threads"`
	MinPriority    string `yaml:"min_priority"`
	DetectPackages *bool  `yaml:"detect_packages"`
}

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
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

func NewConfig(configPath string) (*Config, error) {
	config := &Config{}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfig reads the config file at path. A missing default config file yields an empty config;
// an explicitly requested file must exist.
func LoadConfig(path string) (*Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv("SCANIO_CHECKSTYLE_CONFIG")
	}
	if path == "" {
		path = DefaultConfigPath
		explicit = false
	}

	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return &Config{}, nil
	}

	cfg, err := NewConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", path, err)
	}
	return cfg, nil
}
