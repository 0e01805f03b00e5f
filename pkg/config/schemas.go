package config

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// SchemaValidator validates a Config against the #Config CUE definition.
type SchemaValidator struct {
	ctx    *cue.Context
	schema cue.Value
	mu     sync.Mutex
}

// NewSchemaValidator compiles the built-in schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	return NewSchemaValidatorFromSource(builtinConfigSchema)
}

// NewSchemaValidatorFromSource compiles src, which must define #Config.
func NewSchemaValidatorFromSource(src string) (*SchemaValidator, error) {
	ctx := cuecontext.New()

	val := ctx.CompileString(src, cue.Filename("config.cue"))
	if err := val.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile config schema: %w", err)
	}

	schema := val.LookupPath(cue.ParsePath("#Config"))
	if !schema.Exists() {
		return nil, fmt.Errorf("config schema does not define #Config")
	}

	return &SchemaValidator{ctx: ctx, schema: schema}, nil
}

// Validate unifies cfg with the schema and requires a concrete result.
func (sv *SchemaValidator) Validate(cfg *Config) error {
	// cue.Context is not safe for concurrent use
	sv.mu.Lock()
	defer sv.mu.Unlock()

	dataVal := sv.ctx.Encode(cfg)
	if err := dataVal.Err(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	unified := sv.schema.Unify(dataVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("config schema validation failed: %w", err)
	}

	return nil
}

const builtinConfigSchema = `
// Configuration schema for pethotel.yaml
#Config: {
	database: {
		// SQLite file path or ":memory:"
		path:            string & !=""
		busy_timeout_ms: int & >=0
		journal_mode:    "DELETE" | "TRUNCATE" | "PERSIST" | "MEMORY" | "WAL" | "OFF"
	}

	logging: {
		level:  "trace" | "debug" | "info" | "warn" | "error" | "fatal"
		format: "console" | "json"
		output: string & !=""
	}

	tracing: {
		enabled:       bool
		exporter:      "otlp" | "stdout" | "none"
		endpoint:      string
		sampling_rate: number & >=0 & <=1
		insecure:      bool
	}

	metrics: {
		enabled:  bool
		textfile: string
	}

	events: {
		enabled:     bool
		buffer_size: int & >0
	}
}
`
