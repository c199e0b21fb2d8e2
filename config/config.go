// Package config varsayılanlar, isteğe bağlı YAML dosyası ve ortam
// değişkenlerinden (bu sırayla) uygulama ayarlarını yükler.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	devJWTSecret     = "dev-jwt-secret-change-me"
	devSessionSecret = "dev-session-secret-change-me-32b"
)

type Config struct {
	Environment string         `yaml:"environment"`
	PingMessage string         `yaml:"ping_message"`
	HTTP        HTTPConfig     `yaml:"http"`
	Database    DatabaseConfig `yaml:"database"`
	Auth        AuthConfig     `yaml:"auth"`
	Log         LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	SSLMode      string `yaml:"sslmode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	SessionSecret string        `yaml:"session_secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	SecureCookie  bool          `yaml:"secure_cookie"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json | console
}

func Default() *Config {
	return &Config{
		Environment: "development",
		PingMessage: "ping",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			User:         "postgres",
			Name:         "goals",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 25,
		},
		Auth: AuthConfig{
			JWTSecret:     devJWTSecret,
			SessionSecret: devSessionSecret,
			TokenTTL:      7 * 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load path boşsa dosya okunmaz.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config dosyası okunamadı: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config dosyası çözümlenemedi: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Environment = getEnv("APP_ENV", c.Environment)
	c.PingMessage = getEnv("PING_MESSAGE", c.PingMessage)

	c.HTTP.Addr = getEnv("HTTP_ADDR", c.HTTP.Addr)
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HTTP_ADDR") == "" {
		c.HTTP.Addr = ":" + port
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.HTTP.CORSOrigins = splitList(origins)
	}

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvInt("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.SessionSecret = getEnv("SESSION_SECRET", c.Auth.SessionSecret)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) Validate() error {
	var err error
	if c.HTTP.Addr == "" {
		err = multierr.Append(err, errors.New("http.addr boş olamaz"))
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("geçersiz database.port: %d", c.Database.Port))
	}
	if c.Auth.TokenTTL <= 0 {
		err = multierr.Append(err, errors.New("auth.token_ttl pozitif olmalı"))
	}
	if c.Auth.JWTSecret == "" || c.Auth.SessionSecret == "" {
		err = multierr.Append(err, errors.New("jwt ve session secret boş olamaz"))
	}
	if c.IsProduction() {
		if c.Auth.JWTSecret == devJWTSecret || c.Auth.SessionSecret == devSessionSecret {
			err = multierr.Append(err, errors.New("production ortamında varsayılan secret kullanılamaz"))
		}
		if len(c.Auth.SessionSecret) < 32 {
			err = multierr.Append(err, errors.New("session secret en az 32 byte olmalı"))
		}
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		err = multierr.Append(err, fmt.Errorf("geçersiz log.format: %q", c.Log.Format))
	}
	return err
}

// DSN lib/pq bağlantı cümlesi.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
