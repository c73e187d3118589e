package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	API       APIConfig       `mapstructure:"api"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	Seed      bool            `mapstructure:"seed"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host" validate:"required"`
	Port            int           `mapstructure:"port" validate:"gt=0,lt=65536"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type APIConfig struct {
	Title       string `mapstructure:"title" validate:"required"`
	Description string `mapstructure:"description"`
	Version     string `mapstructure:"version" validate:"required"`
}

type LoggingConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

type RateLimitConfig struct {
	RPM int `mapstructure:"rpm" validate:"gte=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type WorkerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval" validate:"required_if=Enabled true,gte=0"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"server.host":          "SERVER_HOST",
	"server.port":          "SERVER_PORT",
	"logging.level":        "LOG_LEVEL",
	"logging.development":  "LOG_DEVELOPMENT",
	"api.title":            "API_TITLE",
	"api.description":      "API_DESCRIPTION",
	"api.version":          "API_VERSION",
	"seed":                 "SEED_SAMPLE_DATA",
	"rate_limit.rpm":       "RATE_LIMIT_RPM",
	"cors.allowed_origins": "CORS_ALLOWED_ORIGINS",
	"worker.enabled":       "WORKER_ENABLED",
	"worker.interval":      "WORKER_INTERVAL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("api.title", "Dummy Task Server")
	v.SetDefault("api.description", "A simple server for managing tasks with CRUD operations")
	v.SetDefault("api.version", "1.0.0")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)

	v.SetDefault("rate_limit.rpm", 100)
	v.SetDefault("cors.allowed_origins", []string{})

	v.SetDefault("worker.enabled", true)
	v.SetDefault("worker.interval", 5*time.Minute)

	v.SetDefault("seed", true)
}

// Load reads defaults, then the YAML file at path (optional when path is
// empty and config.yml is missing), then environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize canonicalizes values that may arrive from env or flags in a loose form.
func (c *Config) Normalize() {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.CORS.AllowedOrigins = splitOrigins(c.CORS.AllowedOrigins)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// splitOrigins accepts both list values and a single comma-separated string from env.
func splitOrigins(in []string) []string {
	out := []string{}
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}
