package config

import (
	"time"

	"github.com/deleonhotel/pethotel/pkg/stores"
	"github.com/deleonhotel/pethotel/pkg/telemetry"
)

// Config is the pethotel configuration file (pethotel.yaml).
type Config struct {
	// Database configures the SQLite booking store.
	Database DatabaseConfig `yaml:"database" json:"database" koanf:"database" validate:"required"`

	// Logging configures the zerolog logger.
	Logging LoggingConfig `yaml:"logging" json:"logging" koanf:"logging"`

	// Tracing configures OpenTelemetry span export.
	Tracing TracingConfig `yaml:"tracing" json:"tracing" koanf:"tracing"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics" json:"metrics" koanf:"metrics"`

	// Events configures the audit event publisher.
	Events EventsConfig `yaml:"events" json:"events" koanf:"events"`
}

// DatabaseConfig locates and tunes the SQLite file.
type DatabaseConfig struct {
	// Path is the database file, or ":memory:".
	Path string `yaml:"path" json:"path" koanf:"path" validate:"required"`

	// BusyTimeout is in milliseconds.
	BusyTimeout int `yaml:"busy_timeout_ms" json:"busy_timeout_ms" koanf:"busy_timeout_ms" validate:"gte=0"`

	JournalMode string `yaml:"journal_mode" json:"journal_mode" koanf:"journal_mode" validate:"oneof=DELETE TRUNCATE PERSIST MEMORY WAL OFF"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" koanf:"level" validate:"oneof=trace debug info warn error fatal"`
	Format string `yaml:"format" json:"format" koanf:"format" validate:"oneof=console json"`

	// Output is stdout, stderr, discard or a file path.
	Output string `yaml:"output" json:"output" koanf:"output" validate:"required"`
}

// TracingConfig configures span export.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" json:"enabled" koanf:"enabled"`
	Exporter     string  `yaml:"exporter" json:"exporter" koanf:"exporter" validate:"oneof=otlp stdout none"`
	Endpoint     string  `yaml:"endpoint" json:"endpoint" koanf:"endpoint"`
	SamplingRate float64 `yaml:"sampling_rate" json:"sampling_rate" koanf:"sampling_rate" validate:"gte=0,lte=1"`
	Insecure     bool    `yaml:"insecure" json:"insecure" koanf:"insecure"`
}

// MetricsConfig configures metrics collection.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled" koanf:"enabled"`

	// Textfile receives the metrics on exit when set.
	Textfile string `yaml:"textfile" json:"textfile" koanf:"textfile"`
}

// EventsConfig configures the audit event publisher.
type EventsConfig struct {
	Enabled    bool `yaml:"enabled" json:"enabled" koanf:"enabled"`
	BufferSize int  `yaml:"buffer_size" json:"buffer_size" koanf:"buffer_size" validate:"gte=1"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        DefaultDatabasePath,
			BusyTimeout: 5000,
			JournalMode: "DELETE",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "none",
			SamplingRate: 1.0,
			Insecure:     true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Events: EventsConfig{
			Enabled:    true,
			BufferSize: 256,
		},
	}
}

// StoreConfig returns the SQLite store configuration.
func (c *Config) StoreConfig() stores.Config {
	return stores.Config{
		Path:        c.Database.Path,
		BusyTimeout: c.Database.BusyTimeout,
		JournalMode: c.Database.JournalMode,
	}
}

// TelemetryConfig derives the telemetry configuration for the given version.
func (c *Config) TelemetryConfig(version string) *telemetry.Config {
	tc := telemetry.DefaultConfig()
	tc.ServiceVersion = version
	tc.Logging.Level = c.Logging.Level
	tc.Logging.Format = c.Logging.Format
	tc.Logging.Output = c.Logging.Output
	tc.Tracing.Enabled = c.Tracing.Enabled
	tc.Tracing.Exporter = c.Tracing.Exporter
	tc.Tracing.Endpoint = c.Tracing.Endpoint
	tc.Tracing.SamplingRate = c.Tracing.SamplingRate
	tc.Tracing.Insecure = c.Tracing.Insecure
	tc.Tracing.ExportTimeout = 10 * time.Second
	tc.Metrics.Enabled = c.Metrics.Enabled
	tc.Metrics.Textfile = c.Metrics.Textfile
	tc.Events.Enabled = c.Events.Enabled
	tc.Events.BufferSize = c.Events.BufferSize
	return tc
}
