package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	env "github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable read by the generator
const EnvPrefix = "SDKGEN_"

// ErrInvalidConfig is returned when a configuration value is unusable
var ErrInvalidConfig = errors.New("invalid configuration")

// validLogLevels lists the levels accepted by the CLI logger
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Config holds the generator configuration.
// Values are layered: defaults, then an optional TOML file, then SDKGEN_* environment variables.
type Config struct {
	// RenderDir is the root of the generated source tree
	RenderDir string `env:"RENDER_DIR" toml:"render_dir"`
	// BuildDir holds transient build output and is cleared with RenderDir
	BuildDir string `env:"BUILD_DIR" toml:"build_dir"`
	// InputDir is where descriptors and the grouping document live
	InputDir string `env:"INPUT_DIR" toml:"input_dir"`
	// APIConfigFile is the grouping document filename inside InputDir
	APIConfigFile string `env:"API_CONFIG_FILE" toml:"api_config_file"`
	// APIFamily is the category dimension used to group descriptors
	APIFamily string `env:"API_FAMILY" toml:"api_family"`

	// Catalog is an optional descriptor catalog, either a local path or an http(s) URL
	Catalog      string `env:"CATALOG" toml:"catalog"`
	Extension    string `env:"EXTENSION" toml:"extension"`
	ManifestFile string `env:"MANIFEST_FILE" toml:"manifest_file"`
	// Jobs bounds concurrent descriptor parses; 0 means GOMAXPROCS
	Jobs     int    `env:"JOBS" toml:"jobs"`
	LogLevel string `env:"LOG_LEVEL" toml:"log_level"`
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		RenderDir:     "renderedTemplates",
		BuildDir:      "dist",
		InputDir:      "apis",
		APIConfigFile: "api-config.json",
		APIFamily:     "CC API Family",
		Extension:     "ts",
		ManifestFile:  "operationList.yaml",
		LogLevel:      "info",
	}
}

// Load builds a configuration from defaults, the optional TOML file at path and the environment
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration can drive a generation run
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"render directory", c.RenderDir},
		{"build directory", c.BuildDir},
		{"input directory", c.InputDir},
		{"api config file", c.APIConfigFile},
		{"api family dimension", c.APIFamily},
		{"extension", c.Extension},
		{"manifest file", c.ManifestFile},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s cannot be empty", ErrInvalidConfig, r.name)
		}
	}

	if strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("%w: extension %q must not start with a dot", ErrInvalidConfig, c.Extension)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalidConfig, c.Jobs)
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}

	return nil
}

// GroupingPath returns the location of the grouping document
func (c *Config) GroupingPath() string {
	return filepath.Join(c.InputDir, c.APIConfigFile)
}

// ManifestPath returns the location of the operation manifest
func (c *Config) ManifestPath() string {
	return filepath.Join(c.RenderDir, c.ManifestFile)
}
