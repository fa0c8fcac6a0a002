// Package config provides configuration management for the delivery CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	DatabasePath string `koanf:"database"`
	SeedFile     string `koanf:"seed_file"`
	Verbose      bool   `koanf:"verbose"`
	LogLevel     string `koanf:"log_level"`
	LogFormat    string `koanf:"log_format"`
	OutputFormat string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultDatabaseFile = "entrega.db"
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "text"
	DefaultOutput       = "auto"
)

// Config file names searched in the working directory, in order.
const (
	ConfigFileName    = "delivery.yaml"
	ConfigFileNameAlt = "delivery.yml"
)

// DotEnvFileName is an optional file of DELIVERY_ variables in the working directory.
const DotEnvFileName = ".env"

// EnvPrefix is the prefix of environment variables read into Config.
const EnvPrefix = "DELIVERY_"

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		DatabasePath: DefaultDatabaseFile,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		OutputFormat: DefaultOutput,
	}
}
