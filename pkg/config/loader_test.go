package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWithOptions(Options{
		ConfigPath: filepath.Join(t.TempDir(), "absent.yaml"),
	})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != DefaultDatabasePath {
		t.Errorf("expected database path %s, got %s", DefaultDatabasePath, cfg.Database.Path)
	}
	if cfg.Database.BusyTimeout != 5000 {
		t.Errorf("expected busy timeout 5000, got %d", cfg.Database.BusyTimeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeTestFile(t, "pethotel.yaml", `
database:
  path: /var/lib/pethotel/bookings.db
  journal_mode: WAL
logging:
  level: debug
`)

	cfg, err := LoadWithOptions(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != "/var/lib/pethotel/bookings.db" {
		t.Errorf("expected path from file, got %s", cfg.Database.Path)
	}
	if cfg.Database.JournalMode != "WAL" {
		t.Errorf("expected journal mode WAL, got %s", cfg.Database.JournalMode)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	// untouched sections keep their defaults
	if cfg.Database.BusyTimeout != 5000 {
		t.Errorf("expected default busy timeout, got %d", cfg.Database.BusyTimeout)
	}
	if cfg.Events.BufferSize != 256 {
		t.Errorf("expected default buffer size, got %d", cfg.Events.BufferSize)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeTestFile(t, "pethotel.yaml", `
database:
  path: from-file.db
`)

	t.Setenv("PETHOTEL_DATABASE_PATH", "from-env.db")
	t.Setenv("PETHOTEL_DATABASE_BUSY_TIMEOUT_MS", "250")
	t.Setenv("PETHOTEL_TRACING_SAMPLING_RATE", "0.5")
	t.Setenv("PETHOTEL_METRICS_ENABLED", "false")

	cfg, err := LoadWithOptions(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != "from-env.db" {
		t.Errorf("expected path from env, got %s", cfg.Database.Path)
	}
	if cfg.Database.BusyTimeout != 250 {
		t.Errorf("expected busy timeout 250, got %d", cfg.Database.BusyTimeout)
	}
	if cfg.Tracing.SamplingRate != 0.5 {
		t.Errorf("expected sampling rate 0.5, got %f", cfg.Tracing.SamplingRate)
	}
	if cfg.Metrics.Enabled {
		t.Error("expected metrics disabled by env")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := writeTestFile(t, ".env", "PETHOTEL_LOGGING_FORMAT=json\n")
	t.Cleanup(func() { os.Unsetenv("PETHOTEL_LOGGING_FORMAT") })

	cfg, err := LoadWithOptions(Options{EnvFile: envFile})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Format != "json" {
		t.Errorf("expected format json from env file, got %s", cfg.Logging.Format)
	}
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	_, err := LoadWithOptions(Options{EnvFile: filepath.Join(t.TempDir(), ".env")})
	if err != nil {
		t.Fatalf("expected missing env file to be ignored, got %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTestFile(t, "pethotel.yaml", "database: [unterminated")

	if _, err := LoadWithOptions(Options{ConfigPath: path}); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty database path", "database:\n  path: \"\"\n"},
		{"unknown journal mode", "database:\n  journal_mode: FAST\n"},
		{"unknown log level", "logging:\n  level: loud\n"},
		{"sampling rate above one", "tracing:\n  sampling_rate: 2\n"},
		{"otlp without endpoint", "tracing:\n  enabled: true\n  exporter: otlp\n"},
		{"zero buffer", "events:\n  buffer_size: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, "pethotel.yaml", tt.content)
			if _, err := LoadWithOptions(Options{ConfigPath: path}); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pethotel.yaml")

	cfg := Default()
	cfg.Database.Path = "bookings.db"
	cfg.Tracing.Enabled = true
	cfg.Tracing.Exporter = "stdout"

	if err := Write(path, cfg); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	loaded, err := LoadWithOptions(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("failed to load written config: %v", err)
	}

	if loaded.Database.Path != "bookings.db" {
		t.Errorf("expected path bookings.db, got %s", loaded.Database.Path)
	}
	if !loaded.Tracing.Enabled || loaded.Tracing.Exporter != "stdout" {
		t.Errorf("expected stdout tracing, got %+v", loaded.Tracing)
	}
}

func TestConfig_TelemetryConfig(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "warn"
	cfg.Metrics.Textfile = "/tmp/pethotel.prom"

	tc := cfg.TelemetryConfig("1.2.3")

	if tc.ServiceVersion != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %s", tc.ServiceVersion)
	}
	if tc.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %s", tc.Logging.Level)
	}
	if tc.Metrics.Textfile != "/tmp/pethotel.prom" {
		t.Errorf("expected textfile, got %s", tc.Metrics.Textfile)
	}
	if err := tc.Validate(); err != nil {
		t.Errorf("derived telemetry config is invalid: %v", err)
	}
}

func TestConfig_StoreConfig(t *testing.T) {
	cfg := Default()
	sc := cfg.StoreConfig()

	if sc.Path != cfg.Database.Path || sc.BusyTimeout != 5000 || sc.JournalMode != "DELETE" {
		t.Errorf("unexpected store config: %+v", sc)
	}
}
