// Package constants provides fixed values shared across the logger system:
// deployment-environment names, the environment variable consulted for the
// ambient deployment context, and formatting defaults.
package constants

const (
	// DevelopmentEnvironment is the environment name for local development.
	DevelopmentEnvironment = "development"
	// TestEnvironment is the environment name used while running tests.
	TestEnvironment = "test"
	// ProductionEnvironment is the environment name for production deployments.
	ProductionEnvironment = "production"

	// EnvironmentVariable is the process variable consulted when a Config
	// does not name a deployment environment explicitly.
	EnvironmentVariable = "TILDELOG_ENV"

	// DefaultDelimiter separates the fields of a formatted log line.
	DefaultDelimiter = " ~ "

	// HeaderMessage is the message body of the line written when a log file
	// is created.
	HeaderMessage = "Logfile created"

	// LogFilePermissions are the default file permissions for log files.
	LogFilePermissions = 0o644
	// LogDirPermissions are the permissions used when creating missing
	// parent directories for a log file.
	LogDirPermissions = 0o700
)
