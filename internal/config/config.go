// Package config loads runtime settings from defaults, an optional YAML file,
// a .env file and WEIGHTTRACKER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyAddr        = "addr"
	KeyBackend     = "backend"
	KeySQLitePath  = "sqlite_path"
	KeyDatabaseURL = "database_url"
	KeyLogLevel    = "log_level"
	KeyLogPretty   = "log_pretty"
	KeyCORSOrigins = "cors_origins"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

const envPrefix = "WEIGHTTRACKER"

// Config holds runtime settings.
type Config struct {
	// HTTP server
	Addr        string
	CORSOrigins []string

	// Storage
	Backend     string
	SQLitePath  string
	DatabaseURL string

	// Logging
	LogLevel  string
	LogPretty bool
}

// Load builds a Config. configFile may be empty; a missing config file is not
// an error, but an unreadable one is.
func Load(configFile string) (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyBackend, BackendSQLite)
	v.SetDefault(KeySQLitePath, "./data/weighttracker.db")
	v.SetDefault(KeyDatabaseURL, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogPretty, false)
	v.SetDefault(KeyCORSOrigins, []string{})

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("weighttracker")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		Addr:        v.GetString(KeyAddr),
		CORSOrigins: splitList(v.GetStringSlice(KeyCORSOrigins)),
		Backend:     strings.ToLower(v.GetString(KeyBackend)),
		SQLitePath:  v.GetString(KeySQLitePath),
		DatabaseURL: v.GetString(KeyDatabaseURL),
		LogLevel:    v.GetString(KeyLogLevel),
		LogPretty:   v.GetBool(KeyLogPretty),
	}, nil
}

// Validate returns an error listing every problem with the configuration.
func (c *Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "addr cannot be empty")
	} else if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		problems = append(problems, fmt.Sprintf("invalid addr '%s': %v", c.Addr, err))
	}

	switch c.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "sqlite_path cannot be empty when using sqlite backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "database_url is required when using postgres backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid backend '%s': must be one of %v",
			c.Backend, []string{BackendMemory, BackendSQLite, BackendPostgres}))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log_level '%s'", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// splitList accepts both YAML lists and comma-separated environment values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
