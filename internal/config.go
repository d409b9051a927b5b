package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/ehwaz/internal/apperr"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Script    DirConfig         `yaml:"script"`
	Notebook  DirConfig         `yaml:"notebook"`
	Execution ExecutionConfig   `yaml:"execution"`
	Sync      SyncConfig        `yaml:"sync"`
}

// Validate validates the configuration. Both directory settings are
// checked first so that a missing one stops the process before any
// document is touched.
func (c *Config) Validate() error {
	if c.Script.Dir == "" {
		return fmt.Errorf("%w: SCRIPT_DIR (config key script.dir)", apperr.ErrMissingSetting)
	}
	if c.Notebook.Dir == "" {
		return fmt.Errorf("%w: NOTEBOOK_DIR (config key notebook.dir)", apperr.ErrMissingSetting)
	}
	if err := c.Execution.Validate(); err != nil {
		return err
	}
	return c.Sync.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// DirConfig holds the path to one document directory.
type DirConfig struct {
	Dir string `yaml:"dir"`
}

// ExecutionConfig configures the external execution engine.
type ExecutionConfig struct {
	Command string   `yaml:"command"`
	Timeout Duration `yaml:"timeout"`
}

// Validate validates the execution configuration.
func (c *ExecutionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Command, validation.Required),
		validation.Field(&c.Timeout, validation.Min(Duration(time.Second))),
	)
}

// SyncConfig configures the sync driver.
//
// Workers bounds per-identity parallelism; identities are independent so
// values above 1 are sound, and 1 preserves serial processing.
// ContinueOnError switches the batch policy from halt-on-first-fatal to
// record-and-continue.
type SyncConfig struct {
	Workers         int  `yaml:"workers"`
	ContinueOnError bool `yaml:"continue_on_error"`
}

// Validate validates the sync configuration.
func (c *SyncConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Workers, validation.Required, validation.Min(1)),
	)
}

// Duration is a time.Duration that unmarshals from YAML strings such as
// "10m" or "600s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
// The directory settings have no defaults: they must come from the
// config file, flags, or the SCRIPT_DIR/NOTEBOOK_DIR environment.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Execution: ExecutionConfig{
			Command: "jupyter",
			Timeout: Duration(10 * time.Minute),
		},
		Sync: SyncConfig{
			Workers: 1,
		},
	}
}
