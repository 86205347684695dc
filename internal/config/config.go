package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Extract ExtractConfig `yaml:"extract" envconfig:"EXTRACT"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required"`
}

// ExtractConfig contains extraction run configuration.
type ExtractConfig struct {
	// Workers bounds how many grade sheets are processed concurrently.
	// One worker reproduces strictly sequential processing.
	Workers int `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`

	// MoveNotFound controls whether unclassifiable files are relocated to
	// the not-found directory after processing.
	MoveNotFound bool `yaml:"move_not_found" envconfig:"MOVE_NOT_FOUND"`
}

// PathsConfig contains file system path overrides. Empty fields fall back
// to the executable-relative defaults from GetPaths.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	TermsFile string `yaml:"terms_file" envconfig:"TERMS_FILE"`
}

// Load loads configuration from defaults, an optional YAML file, and
// environment variables, in increasing order of precedence. Environment
// variables use the GRADEX_ prefix (GRADEX_LOGGING_LEVEL, GRADEX_EXTRACT_WORKERS, ...).
func Load() (*Config, error) {
	cfg := Default()

	// Overlay from config file if one exists
	configFile := getConfigFilePath()
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables take precedence over file values
	if err := envconfig.Process("GRADEX", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays configuration from a YAML file onto cfg. Fields
// absent from the file keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", filePath, err)
	}

	return nil
}

// validate checks the configuration against its struct tags.
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			ve := verrs[0]
			return fmt.Errorf("invalid value for %s: failed %q rule", ve.Namespace(), ve.Tag())
		}
		return err
	}
	return nil
}

// ResolveInputDir returns the effective input directory, preferring the
// configured override over the executable-relative default.
func (c *Config) ResolveInputDir(paths *Paths) string {
	return resolveOverride(c.Paths.InputDir, paths.InputDir, paths)
}

// ResolveOutputDir returns the effective output root. The extracted/ and
// not-found/ directories are created beneath it.
func (c *Config) ResolveOutputDir(paths *Paths) string {
	return resolveOverride(c.Paths.OutputDir, paths.DataDir, paths)
}

// ResolveTermsFile returns the effective terms reference file path.
func (c *Config) ResolveTermsFile(paths *Paths) string {
	return resolveOverride(c.Paths.TermsFile, paths.TermsFile, paths)
}

// resolveOverride resolves an optional relative override against the
// executable directory, falling back to def when unset.
func resolveOverride(override, def string, paths *Paths) string {
	if override == "" {
		return def
	}
	if filepath.IsAbs(override) {
		return override
	}
	return filepath.Join(paths.ExecutableDir, override)
}

// getConfigFilePath returns the path to the config file.
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Extract: ExtractConfig{
			Workers:      DefaultWorkers,
			MoveNotFound: true,
		},
		Paths: PathsConfig{},
	}
}
