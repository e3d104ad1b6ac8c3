// Package config loads runtime configuration for the server and the admin
// CLI.
//
// PRECEDENCE (highest first):
//
//	WORKOUTIFY_* environment variables (PORT and DB_PATH also accepted bare)
//	values from a .env file in the working directory
//	the YAML config file, if one is given or found
//	built-in defaults
//
// A missing config file or .env file is not an error.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "WORKOUTIFY"

	KeyPort               = "port"
	KeyDBPath             = "db_path"
	KeyLogLevel           = "log_level"
	KeyLogFormat          = "log_format"
	KeySummaryDefaultDays = "summary_default_days"
	KeySessionTTL         = "session_ttl"
	KeyAllowedOrigins     = "allowed_origins"
	KeyMaxBodyBytes       = "max_body_bytes"
)

// Config holds everything needed to run the server or the CLI.
type Config struct {
	Port               int
	DBPath             string
	LogLevel           string
	LogFormat          string
	SummaryDefaultDays int
	SessionTTL         time.Duration
	AllowedOrigins     []string
	MaxBodyBytes       int64
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:               8080,
		DBPath:             "data/workoutify.db",
		LogLevel:           "info",
		LogFormat:          "text",
		SummaryDefaultDays: 7,
		SessionTTL:         30 * 24 * time.Hour,
		AllowedOrigins:     []string{"*"},
		MaxBodyBytes:       1 << 20,
	}
}

// Load reads configuration from path (if non-empty) or from
// ./workoutify.yaml and ./config/workoutify.yaml, then applies .env and
// environment overrides.
func Load(path string) (Config, error) {
	// A missing .env is the normal case outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	def := Default()
	v.SetDefault(KeyPort, def.Port)
	v.SetDefault(KeyDBPath, def.DBPath)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFormat, def.LogFormat)
	v.SetDefault(KeySummaryDefaultDays, def.SummaryDefaultDays)
	v.SetDefault(KeySessionTTL, def.SessionTTL)
	v.SetDefault(KeyAllowedOrigins, def.AllowedOrigins)
	v.SetDefault(KeyMaxBodyBytes, def.MaxBodyBytes)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// Bare names kept for container platforms that only set PORT.
	if err := v.BindEnv(KeyPort, envPrefix+"_PORT", "PORT"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv(KeyDBPath, envPrefix+"_DB_PATH", "DB_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("workoutify")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:               v.GetInt(KeyPort),
		DBPath:             v.GetString(KeyDBPath),
		LogLevel:           strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:          strings.ToLower(v.GetString(KeyLogFormat)),
		SummaryDefaultDays: v.GetInt(KeySummaryDefaultDays),
		SessionTTL:         v.GetDuration(KeySessionTTL),
		AllowedOrigins:     splitList(v.GetStringSlice(KeyAllowedOrigins)),
		MaxBodyBytes:       v.GetInt64(KeyMaxBodyBytes),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// splitList flattens comma-separated entries, so both a YAML list and
// WORKOUTIFY_ALLOWED_ORIGINS="a,b" work.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for part := range strings.SplitSeq(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db_path must not be empty"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if c.SummaryDefaultDays < 1 || c.SummaryDefaultDays > 90 {
		errs = append(errs, fmt.Errorf("summary_default_days must be between 1 and 90, got %d", c.SummaryDefaultDays))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log_level must be debug, info, warn or error, got %q", s)
	}
}

// NewLogger builds the process logger described by c.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
