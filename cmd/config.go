package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"bloomify/internal/pkg/errs"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort          = "5000"
	defaultSMTPHost          = "smtp.gmail.com"
	defaultSMTPPort          = 587
	defaultAllowedOrigins    = "https://bloomify-green.vercel.app"
	defaultHeartbeatSchedule = "@every 25s"
	defaultShutdownTimeout   = 10 * time.Second
)

var ErrMissingCredentials = errors.New("missing EMAIL_USER or EMAIL_PASS in environment variables")

type Config struct {
	HTTPPort          string
	EmailUser         string
	EmailPass         string
	SMTPHost          string
	SMTPPort          int
	AllowedOrigins    []string
	LogLevel          slog.Level
	PatchStrict       bool
	HeartbeatSchedule string
	ShutdownTimeout   time.Duration
}

// LoadConfig reads the environment after loading envFile into it. A missing
// envFile is ignored; variables already set in the environment win.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		HTTPPort:          envOrDefault("PORT", defaultHTTPPort),
		EmailUser:         os.Getenv("EMAIL_USER"),
		EmailPass:         os.Getenv("EMAIL_PASS"),
		SMTPHost:          envOrDefault("SMTP_HOST", defaultSMTPHost),
		SMTPPort:          defaultSMTPPort,
		AllowedOrigins:    splitList(envOrDefault("ALLOWED_ORIGINS", defaultAllowedOrigins)),
		LogLevel:          slog.LevelInfo,
		HeartbeatSchedule: envOrDefault("HEARTBEAT_SCHEDULE", defaultHeartbeatSchedule),
		ShutdownTimeout:   defaultShutdownTimeout,
	}

	var problems []error
	if raw, ok := lookup("SMTP_PORT"); ok {
		port, err := parsePort(raw)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("SMTP_PORT", err))
		}
		cfg.SMTPPort = port
	}
	if _, err := parsePort(cfg.HTTPPort); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("PORT", err))
	}
	if raw, ok := lookup("LOG_LEVEL"); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
		}
	}
	if raw, ok := lookup("PATCH_STRICT"); ok {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("PATCH_STRICT", err))
		}
		cfg.PatchStrict = strict
	}
	if raw, ok := lookup("SHUTDOWN_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(raw)
		if err == nil && timeout <= 0 {
			err = errors.New("must be positive")
		}
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("SHUTDOWN_TIMEOUT", err))
		}
		cfg.ShutdownTimeout = timeout
	}
	if err := errors.Join(problems...); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings the process cannot start without.
func (c Config) Validate() error {
	if c.EmailUser == "" || c.EmailPass == "" {
		return ErrMissingCredentials
	}
	if len(c.AllowedOrigins) == 0 {
		return errs.NewValueIsRequiredError("ALLOWED_ORIGINS")
	}
	return nil
}

func (c Config) Addr() string {
	return "0.0.0.0:" + c.HTTPPort
}

func lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func envOrDefault(key, fallback string) string {
	if value, ok := lookup(key); ok {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}
