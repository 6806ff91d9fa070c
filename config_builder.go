package tildelog

import (
	"io"
	"os"

	"github.com/tildelog/tildelog/internal/constants"
)

// ConfigBuilder provides a fluent API for constructing logger configurations.
// It allows for more readable and chainable configuration setup.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new builder with sensible defaults.
// This is the entry point for the fluent configuration API.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: Config{
			Destination: os.Stdout,
			Delimiter:   constants.DefaultDelimiter,
		},
	}
}

// WithDestination sets an already-open writable handle as the destination.
// Example: builder.WithDestination(os.Stderr).
func (b *ConfigBuilder) WithDestination(w io.Writer) *ConfigBuilder {
	b.config.Destination = w

	return b
}

// WithFileDestination configures the logger to write to a file path.
// The file is created (with its parent directories and a creation header)
// if it doesn't exist, and appended to if it does.
// Example: builder.WithFileDestination("/var/log/my_app.log").
func (b *ConfigBuilder) WithFileDestination(path string) *ConfigBuilder {
	b.config.Destination = path

	return b
}

// WithLevel sets the threshold by level name.
// Example: builder.WithLevel("warn").
func (b *ConfigBuilder) WithLevel(name string) *ConfigBuilder {
	b.config.Level = name

	return b
}

// WithDebugLevel is a convenience method for WithLevel("debug").
func (b *ConfigBuilder) WithDebugLevel() *ConfigBuilder {
	return b.WithLevel(DebugLevel.String())
}

// WithInfoLevel is a convenience method for WithLevel("info").
func (b *ConfigBuilder) WithInfoLevel() *ConfigBuilder {
	return b.WithLevel(InfoLevel.String())
}

// WithDelimiter sets the field separator for formatted lines.
func (b *ConfigBuilder) WithDelimiter(delimiter string) *ConfigBuilder {
	b.config.Delimiter = delimiter

	return b
}

// WithAutoFlush enables or disables flushing on every append.
func (b *ConfigBuilder) WithAutoFlush(enable bool) *ConfigBuilder {
	b.config.AutoFlush = enable

	return b
}

// WithEnvironment sets the deployment-context name.
// Example: builder.WithEnvironment("production").
func (b *ConfigBuilder) WithEnvironment(environment string) *ConfigBuilder {
	b.config.Environment = environment

	return b
}

// Build returns the assembled configuration.
func (b *ConfigBuilder) Build() Config {
	return b.config
}
