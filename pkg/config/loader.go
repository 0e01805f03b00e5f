package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is read when no --config flag is given.
	DefaultConfigFile = "pethotel.yaml"

	// DefaultDatabasePath is the database file used when none is configured.
	DefaultDatabasePath = "data/pethotel.db"

	// EnvPrefix prefixes environment overrides, e.g. PETHOTEL_DATABASE_PATH.
	EnvPrefix = "PETHOTEL_"
)

// Options controls where Load reads from.
type Options struct {
	// ConfigPath is the YAML file. A missing file is not an error.
	ConfigPath string

	// EnvFile is a dotenv file loaded before environment overrides.
	// A missing file is not an error.
	EnvFile string

	// EnvPrefix overrides EnvPrefix.
	EnvPrefix string
}

// Load reads the configuration at path with the default options.
func Load(path string) (*Config, error) {
	return LoadWithOptions(Options{ConfigPath: path, EnvFile: ".env"})
}

// LoadWithOptions applies, in order: defaults, the YAML file, the dotenv
// file, environment overrides. The result is checked with struct tag
// validation and the CUE schema.
func LoadWithOptions(opts Options) (*Config, error) {
	cfg := Default()

	if opts.ConfigPath != "" {
		if err := readFile(opts.ConfigPath, cfg); err != nil {
			return nil, err
		}
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = EnvPrefix
	}
	if err := applyEnv(prefix, cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnv maps PETHOTEL_DATABASE_BUSY_TIMEOUT_MS to database.busy_timeout_ms.
func applyEnv(prefix string, cfg *Config) error {
	k := koanf.New(".")

	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, prefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	if len(k.Keys()) == 0 {
		return nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return nil
}

// Validate checks cfg against its struct tags and the CUE schema.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Exporter == "otlp" && cfg.Tracing.Endpoint == "" {
		return fmt.Errorf("invalid configuration: tracing.endpoint is required for the otlp exporter")
	}

	sv, err := NewSchemaValidator()
	if err != nil {
		return err
	}

	return sv.Validate(cfg)
}

// Write stores cfg as YAML at path, creating parent directories.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
