package tildelog

import (
	"os"
	"time"

	"github.com/tildelog/tildelog/internal/constants"
)

// DefaultDelimiter is the field separator used when a Config does not name one.
const DefaultDelimiter = constants.DefaultDelimiter

// Config holds the configuration applied by Configure.
type Config struct {
	// Destination is where logs are written: an already-open io.Writer,
	// adopted as-is, or a filesystem path opened (and created if missing)
	// for append.
	Destination any
	// Level names the minimum severity to log ("debug", "info", "warn",
	// "error", "fatal"). When empty or unrecognized the threshold falls back
	// to the deployment default: error in production, debug elsewhere.
	Level string
	// Delimiter separates the fields of each formatted line.
	// Defaults to " ~ ".
	Delimiter string
	// AutoFlush writes every message through the destination as it is
	// logged instead of accumulating until an explicit Flush.
	AutoFlush bool
	// Environment is the deployment-context name. When empty it is read
	// from the TILDELOG_ENV process variable, defaulting to "development".
	// Production selects the error default threshold; development and test
	// force blocking writes.
	Environment string
	// Clock supplies the timestamp for file-creation headers.
	// Defaults to time.Now.
	Clock func() time.Time
}

// DefaultConfig returns a configuration that writes to standard output with
// the default delimiter and deferred flushing.
func DefaultConfig() Config {
	return Config{
		Destination: os.Stdout,
		Delimiter:   DefaultDelimiter,
	}
}

// resolveEnvironment returns the effective deployment-context name for a
// configuration: the explicit value, the TILDELOG_ENV process variable, or
// the development default, in that order.
func resolveEnvironment(cfg Config) string {
	if cfg.Environment != "" {
		return cfg.Environment
	}

	if env := os.Getenv(constants.EnvironmentVariable); env != "" {
		return env
	}

	return constants.DevelopmentEnvironment
}

// resolveThreshold returns the effective threshold rank: the explicitly named
// level when it parses to a valid rank, otherwise the deployment default.
func resolveThreshold(name, environment string) Level {
	if name != "" {
		level, err := ParseLevel(name)
		if err == nil {
			return level
		}
	}

	if environment == constants.ProductionEnvironment {
		return ErrorLevel
	}

	return DebugLevel
}
