package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Context keys shared with the cli and commands packages.
type (
	configKey struct{}
	loggerKey struct{}
)

// findConfigFile finds the config file to use.
// Priority: explicit path > delivery.yaml > delivery.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// knownKeys are the config keys that map onto Config fields.
var knownKeys = map[string]bool{
	"database":   true,
	"seed_file":  true,
	"verbose":    true,
	"log_level":  true,
	"log_format": true,
	"output":     true,
}

// Loaded is the result of LoadConfig.
type Loaded struct {
	*Config
	// FileUsed is the config file that was read, or "" if none.
	FileUsed string
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > .env > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Loaded, error) {
	k := koanf.New(".")
	def := Default()

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"database":   def.DatabasePath,
		"seed_file":  "",
		"verbose":    false,
		"log_level":  def.LogLevel,
		"log_format": def.LogFormat,
		"output":     def.OutputFormat,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	fileUsed := findConfigFile(cfgFile)
	if fileUsed != "" {
		if err := k.Load(file.Provider(fileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", fileUsed, err)
		}
	}

	// 3. .env file in the working directory, below the real environment
	dotenv, err := readDotEnv(DotEnvFileName)
	if err != nil {
		return nil, err
	}
	if len(dotenv) > 0 {
		if err := k.Load(confmap.Provider(dotenv, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", DotEnvFileName, err)
		}
	}

	// 4. Environment variables: DELIVERY_SEED_FILE -> seed_file
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		if key, ok := envKey(s); ok {
			return key
		}
		return ""
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 5. Flags, only when explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !f.Changed || !knownKeys[key] {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Unknown keys are only possible from the config file; reject them so typos surface.
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Relative paths in a config file are relative to that file.
	if fileUsed != "" && !flagChanged(flags, "database") && !envSet(dotenv, "database") {
		cfg.DatabasePath = resolvePathRelativeTo(cfg.DatabasePath, filepath.Dir(fileUsed))
	}
	if fileUsed != "" && !flagChanged(flags, "seed-file") && !envSet(dotenv, "seed_file") {
		cfg.SeedFile = resolvePathRelativeTo(cfg.SeedFile, filepath.Dir(fileUsed))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Loaded{Config: &cfg, FileUsed: fileUsed}, nil
}

// readDotEnv returns the DELIVERY_ entries of a dotenv file as config keys.
// A missing file yields nil. The process environment is left untouched.
func readDotEnv(path string) (map[string]interface{}, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	out := make(map[string]interface{})
	for name, value := range vars {
		if key, ok := envKey(name); ok {
			out[key] = value
		}
	}
	return out, nil
}

// envKey maps DELIVERY_SEED_FILE to seed_file. ok is false for unrelated names.
func envKey(name string) (string, bool) {
	if !strings.HasPrefix(name, EnvPrefix) {
		return "", false
	}
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	return key, knownKeys[key]
}

// envSet reports whether key came from the environment or the dotenv file.
func envSet(dotenv map[string]interface{}, key string) bool {
	if _, ok := dotenv[key]; ok {
		return true
	}
	return os.Getenv(EnvPrefix+strings.ToUpper(key)) != ""
}

func flagChanged(flags *pflag.FlagSet, name string) bool {
	return flags != nil && flags.Changed(name)
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty, absolute, or an in-memory database.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// WithConfig returns a context carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return Default()
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
