// Package configloader loads logger configuration from the environment, YAML
// documents, or files using Viper.
//
// Loaded settings map onto tildelog.Config: destination ("stdout", "stderr",
// or a file path), level name, delimiter, auto-flush, and deployment
// environment. Values absent from the source keep their tildelog defaults.
package configloader

import (
	"bytes"
	"os"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/viper"

	"github.com/tildelog/tildelog"
)

const defaultEnvPrefix = "TILDELOG"

type rawConfig struct {
	Destination string `mapstructure:"destination" yaml:"destination"`
	Level       string `mapstructure:"level"       yaml:"level"`
	Delimiter   string `mapstructure:"delimiter"   yaml:"delimiter"`
	AutoFlush   *bool  `mapstructure:"auto_flush"  yaml:"auto_flush"`
	Environment string `mapstructure:"environment" yaml:"environment"`
}

// FromEnv builds a configuration from environment variables with the given
// prefix. Keys are uppercased and dots become underscores, so with prefix
// "app" the level is read from APP_LEVEL.
func FromEnv(prefix string) (*tildelog.Config, error) {
	viperInstance := viper.New()

	err := bindEnvironment(viperInstance, prefix)
	if err != nil {
		return nil, err
	}

	return fromViper(viperInstance)
}

// FromYAML parses the provided YAML document into a configuration.
func FromYAML(data []byte) (*tildelog.Config, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ewrap.Wrap(err, "reading YAML configuration")
	}

	return fromViper(viperInstance)
}

// FromFile loads configuration from the given file path and merges
// environment overrides using the default prefix.
func FromFile(path string) (*tildelog.Config, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigFile(path)

	err := bindEnvironment(viperInstance, defaultEnvPrefix)
	if err != nil {
		return nil, err
	}

	err = viperInstance.ReadInConfig()
	if err != nil {
		return nil, ewrap.Wrapf(err, "reading config file %s", path)
	}

	return fromViper(viperInstance)
}

func bindEnvironment(viperInstance *viper.Viper, prefix string) error {
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	if prefix != "" {
		viperInstance.SetEnvPrefix(strings.ToLower(strings.TrimSuffix(prefix, "_")))
	}

	errorGroup := ewrap.NewErrorGroup()

	for _, key := range allKeys() {
		err := viperInstance.BindEnv(key)
		if err != nil {
			errorGroup.Add(err)
		}
	}

	if errorGroup.HasErrors() {
		return errorGroup
	}

	return nil
}

func fromViper(viperInstance *viper.Viper) (*tildelog.Config, error) {
	var raw rawConfig

	err := viperInstance.Unmarshal(&raw)
	if err != nil {
		return nil, ewrap.Wrap(err, "decoding logger configuration")
	}

	return applyRaw(raw)
}

func applyRaw(raw rawConfig) (*tildelog.Config, error) {
	cfg := tildelog.DefaultConfig()

	if raw.Destination != "" {
		cfg.Destination = resolveDestination(raw.Destination)
	}

	if raw.Level != "" {
		level, err := tildelog.ParseLevel(raw.Level)
		if err != nil {
			return nil, err
		}

		cfg.Level = level.String()
	}

	if raw.Delimiter != "" {
		cfg.Delimiter = raw.Delimiter
	}

	if raw.AutoFlush != nil {
		cfg.AutoFlush = *raw.AutoFlush
	}

	if raw.Environment != "" {
		cfg.Environment = raw.Environment
	}

	return &cfg, nil
}

// resolveDestination maps the reserved names "stdout" and "stderr" to the
// standard streams; anything else is treated as a file path.
func resolveDestination(name string) any {
	switch strings.ToLower(name) {
	case "stdout":
		return os.Stdout
	case "stderr":
		return os.Stderr
	default:
		return name
	}
}

func allKeys() []string {
	return []string{
		"destination",
		"level",
		"delimiter",
		"auto_flush",
		"environment",
	}
}
