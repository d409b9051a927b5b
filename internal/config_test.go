package internal

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/ehwaz/internal/apperr"
)

func validConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Script.Dir = "./scripts"
	cfg.Notebook.Dir = "./notebooks"
	return cfg
}

func TestConfig_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestConfig_MissingScriptDir(t *testing.T) {
	cfg := validConfig()
	cfg.Script.Dir = ""
	err := cfg.Validate()
	if !errors.Is(err, apperr.ErrMissingSetting) {
		t.Fatalf("err = %v, want ErrMissingSetting", err)
	}
	if !strings.Contains(err.Error(), "SCRIPT_DIR") {
		t.Errorf("error must name the missing setting: %v", err)
	}
}

func TestConfig_MissingNotebookDir(t *testing.T) {
	cfg := validConfig()
	cfg.Notebook.Dir = ""
	err := cfg.Validate()
	if !errors.Is(err, apperr.ErrMissingSetting) {
		t.Fatalf("err = %v, want ErrMissingSetting", err)
	}
	if !strings.Contains(err.Error(), "NOTEBOOK_DIR") {
		t.Errorf("error must name the missing setting: %v", err)
	}
}

func TestConfig_WorkersMustBePositive(t *testing.T) {
	cfg := validConfig()
	cfg.Sync.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero workers should fail validation")
	}
}

func TestConfig_EmptyExecutionCommand(t *testing.T) {
	cfg := validConfig()
	cfg.Execution.Command = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty execution command should fail validation")
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Execution.Command != "jupyter" {
		t.Errorf("command = %q", cfg.Execution.Command)
	}
	if time.Duration(cfg.Execution.Timeout) != 10*time.Minute {
		t.Errorf("timeout = %v", time.Duration(cfg.Execution.Timeout))
	}
	if cfg.Sync.Workers != 1 || cfg.Sync.ContinueOnError {
		t.Errorf("sync defaults = %+v", cfg.Sync)
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var cfg ExecutionConfig
	if err := yaml.Unmarshal([]byte("command: jupyter\ntimeout: 90s\n"), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if time.Duration(cfg.Timeout) != 90*time.Second {
		t.Errorf("timeout = %v, want 90s", time.Duration(cfg.Timeout))
	}
}

func TestDuration_UnmarshalInvalid(t *testing.T) {
	var cfg ExecutionConfig
	if err := yaml.Unmarshal([]byte("timeout: soon\n"), &cfg); err == nil {
		t.Error("expected error for malformed duration")
	}
}
