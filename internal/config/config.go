package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Telemetry TelemetryConfig
	Session   SessionConfig
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds zap settings.
type LogConfig struct {
	Level    string
	Encoding string
	Output   string
}

// TelemetryConfig holds OTLP export settings. Exporter endpoints come from
// the standard OTEL_EXPORTER_OTLP_* variables.
type TelemetryConfig struct {
	Enabled     bool
	ExportLogs  bool   `mapstructure:"export_logs"`
	ServiceName string `mapstructure:"service_name"`
}

// SessionConfig bounds the HTTP session store.
type SessionConfig struct {
	MaxSessions int           `mapstructure:"max_sessions"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// Option adjusts the loader before the file and env are read.
type Option func(v *viper.Viper)

// WithDefault replaces the built-in default for key. File and env values
// still take precedence.
func WithDefault(key string, value any) Option {
	return func(v *viper.Viper) { v.SetDefault(key, value) }
}

// Load reads configuration from file and env. Env var overrides use prefix CALC_,
// e.g. CALC_LOG_LEVEL=debug. OTEL_SERVICE_NAME is honoured for the service name.
func Load(opts ...Option) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.export_logs", false)
	v.SetDefault("telemetry.service_name", "go-chi-calculator")
	v.SetDefault("session.max_sessions", 1024)
	v.SetDefault("session.idle_timeout", 30*time.Minute)
	for _, opt := range opts {
		opt(v)
	}

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CALC_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "calc"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CALC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("telemetry.service_name", "CALC_TELEMETRY_SERVICE_NAME", "OTEL_SERVICE_NAME"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	// a missing default config file is fine, a broken or missing explicit one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings that would only fail later at startup.
func (c Config) Validate() error {
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("log.encoding must be json or console, got %q", c.Log.Encoding)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Session.MaxSessions < 1 {
		return fmt.Errorf("session.max_sessions must be positive, got %d", c.Session.MaxSessions)
	}
	return nil
}
