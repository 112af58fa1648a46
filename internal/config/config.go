// Package config loads garage settings from defaults, a YAML file, a .env
// file, GARAGE_ environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/mmynk/garage/internal/models"
	"github.com/mmynk/garage/pkg/logging"
)

// Defaults.
const (
	DefaultConfigFile = "garage.yaml"
	DefaultDotEnvFile = ".env"
	DefaultDBPath     = "./data/garage.db"
	DefaultLogLevel   = "warn"
	EnvPrefix         = "GARAGE_"
)

// Config holds the resolved settings.
type Config struct {
	// DBPath is the SQLite database file. Parent directories are created.
	DBPath string `koanf:"db_path"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `koanf:"log_level"`

	// HistoryFile keeps shell input history across sessions. Empty disables it.
	HistoryFile string `koanf:"history_file"`

	// MetricsFile receives store metrics in Prometheus text format on exit.
	// Empty disables it.
	MetricsFile string `koanf:"metrics_file"`

	YearMin int `koanf:"year_min"`
	YearMax int `koanf:"year_max"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// flagKeys maps flag names that differ from their config key.
var flagKeys = map[string]string{
	"db": "db_path",
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		DBPath:   DefaultDBPath,
		LogLevel: DefaultLogLevel,
		YearMin:  models.DefaultYearRange.Min,
		YearMax:  models.DefaultYearRange.Max,
	}
}

// Load resolves the configuration. Precedence, highest first: flags that
// were explicitly set, environment, .env file, config file, defaults.
// An explicit cfgFile must exist; the default garage.yaml is optional.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	def := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"db_path":      def.DBPath,
		"log_level":    def.LogLevel,
		"history_file": "",
		"metrics_file": "",
		"year_min":     def.YearMin,
		"year_max":     def.YearMax,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := cfgFile
	if used == "" && exists(DefaultConfigFile) {
		used = DefaultConfigFile
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. .env file. Existing environment variables win over it.
	if exists(DefaultDotEnvFile) {
		if err := godotenv.Load(DefaultDotEnvFile); err != nil {
			return nil, fmt.Errorf("error reading %s: %w", DefaultDotEnvFile, err)
		}
	}

	// 4. Environment: GARAGE_DB_PATH -> db_path
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 5. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[f.Name]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the program cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db_path is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.YearMin > c.YearMax {
		return fmt.Errorf("year_min (%d) must not be greater than year_max (%d)", c.YearMin, c.YearMax)
	}
	return nil
}

// Years returns the accepted model year range.
func (c *Config) Years() models.YearRange {
	return models.YearRange{Min: c.YearMin, Max: c.YearMax}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
