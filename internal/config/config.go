package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config del servicio. Todo viene de env (o de un .env opcional).
type Config struct {
	Port    int    `mapstructure:"PORT"`
	Env     string `mapstructure:"ENV"`
	AppName string `mapstructure:"APP_NAME"`

	// Vacío => repos in-memory.
	DBDSN string `mapstructure:"DB_DSN"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	OdinBaseURL string `mapstructure:"ODIN_BASE_URL"`
	OdinAPIKey  string `mapstructure:"ODIN_API_KEY"`

	PlansBaseURL         string        `mapstructure:"PLANS_BASE_URL"`
	PlansAPIKey          string        `mapstructure:"PLANS_API_KEY"`
	PlansCacheTTL        time.Duration `mapstructure:"PLANS_CACHE_TTL"`
	AllowAllCapabilities bool          `mapstructure:"ALLOW_ALL_CAPABILITIES"`

	HTTPReadTimeout    time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	HTTPWriteTimeout   time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`
	UpstreamTimeout    time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	ExpiringSoonWindow time.Duration `mapstructure:"EXPIRING_SOON_WINDOW"`
}

var defaults = map[string]any{
	"PORT":                   8080,
	"ENV":                    "development",
	"APP_NAME":               "clinical-sharing",
	"DB_DSN":                 "",
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "text",
	"ODIN_BASE_URL":          "",
	"ODIN_API_KEY":           "",
	"PLANS_BASE_URL":         "",
	"PLANS_API_KEY":          "",
	"PLANS_CACHE_TTL":        30 * time.Second,
	"ALLOW_ALL_CAPABILITIES": false,
	"HTTP_READ_TIMEOUT":      5 * time.Second,
	"HTTP_WRITE_TIMEOUT":     15 * time.Second,
	"UPSTREAM_TIMEOUT":       5 * time.Second,
	"SHUTDOWN_TIMEOUT":       10 * time.Second,
	"EXPIRING_SOON_WINDOW":   7 * 24 * time.Hour,
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for k, def := range defaults {
		v.SetDefault(k, def)
		_ = v.BindEnv(k)
	}

	// .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UseMemory indica si el servicio corre sin Postgres.
func (c *Config) UseMemory() bool {
	return strings.TrimSpace(c.DBDSN) == ""
}

// DevAuth: sin Odin configurado y en development, se aceptan headers X-Debug-*.
func (c *Config) DevAuth() bool {
	return c.IsDev() && strings.TrimSpace(c.OdinBaseURL) == ""
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be in 1..65535, got %d", c.Port)
	}
	timeouts := []struct {
		name string
		d    time.Duration
	}{
		{"HTTP_READ_TIMEOUT", c.HTTPReadTimeout},
		{"HTTP_WRITE_TIMEOUT", c.HTTPWriteTimeout},
		{"UPSTREAM_TIMEOUT", c.UpstreamTimeout},
		{"SHUTDOWN_TIMEOUT", c.ShutdownTimeout},
		{"EXPIRING_SOON_WINDOW", c.ExpiringSoonWindow},
	}
	for _, t := range timeouts {
		if t.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", t.name, t.d)
		}
	}
	if c.PlansCacheTTL < 0 {
		return fmt.Errorf("PLANS_CACHE_TTL must not be negative, got %s", c.PlansCacheTTL)
	}
	if !c.IsDev() {
		if strings.TrimSpace(c.OdinBaseURL) == "" || strings.TrimSpace(c.OdinAPIKey) == "" {
			return errors.New("ODIN_BASE_URL and ODIN_API_KEY are required outside development")
		}
		if c.AllowAllCapabilities {
			return errors.New("ALLOW_ALL_CAPABILITIES is only allowed in development")
		}
	}
	return nil
}
