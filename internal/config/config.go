package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName        = "MailGate"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultShutdownDelay  = 10 * time.Second
	defaultCodeTTL        = 180 * time.Second
	defaultResendWindow   = 60 * time.Second
	defaultAccessTokenTTL = 15 * time.Minute
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration

	// CodeTTL is the total lifetime of a pending verification code.
	// ResendWindow is the minimum interval between issuances for the same key;
	// it must stay shorter than CodeTTL because the rate limit is derived from
	// the remaining TTL of the stored entry.
	CodeTTL      time.Duration
	ResendWindow time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	JWTSecret      string
	AccessTokenTTL time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		ShutdownPeriod: defaultShutdownDelay,
		CodeTTL:        defaultCodeTTL,
		ResendWindow:   defaultResendWindow,
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPFrom:       getEnv("SMTP_FROM", "no-reply@mailgate.local"),
		SMTPUsername:   os.Getenv("SMTP_USERNAME"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: defaultAccessTokenTTL,
	}

	for _, d := range []struct {
		dst        *time.Duration
		secondsVar string
		durVar     string
	}{
		{&cfg.ShutdownPeriod, "SHUTDOWN_TIMEOUT_SECONDS", "SHUTDOWN_TIMEOUT"},
		{&cfg.CodeTTL, "CODE_TTL_SECONDS", "CODE_TTL"},
		{&cfg.ResendWindow, "RESEND_WINDOW_SECONDS", "RESEND_WINDOW"},
		{&cfg.AccessTokenTTL, "ACCESS_TOKEN_TTL_SECONDS", "ACCESS_TOKEN_TTL"},
	} {
		if err := overrideDuration(d.dst, d.secondsVar, d.durVar); err != nil {
			return Config{}, err
		}
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set")
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set")
		}
		if cfg.JWTSecret == "" {
			return Config{}, fmt.Errorf("JWT_SECRET must be set")
		}
	}

	if cfg.ResendWindow >= cfg.CodeTTL {
		return Config{}, fmt.Errorf("RESEND_WINDOW (%s) must be shorter than CODE_TTL (%s)", cfg.ResendWindow, cfg.CodeTTL)
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func overrideDuration(dst *time.Duration, secondsVar, durVar string) error {
	if v := os.Getenv(secondsVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", secondsVar, err)
		}
		*dst = time.Duration(seconds) * time.Second
		return nil
	}
	if v := os.Getenv(durVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", durVar, err)
		}
		*dst = d
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
