package internal

import "github.com/starford/ehwaz/internal/runner"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config   *Config
	executor runner.Executor
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithExecutor overrides the execution engine, replacing the default
// nbconvert invocation. Used by tests.
func WithExecutor(e runner.Executor) Option {
	return func(a *application) {
		a.executor = e
	}
}
