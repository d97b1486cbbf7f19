// Package config reads service settings from the environment. A .env file in the
// working directory is loaded first when present; real environment variables win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Log store backends
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds all runtime settings
type Config struct {
	Port             string
	DatabasePath     string
	LogStore         string
	ProofTableSource string
	TableLoadTimeout time.Duration
	LogLevel         string
	AllowedOrigins   []string
	UseHTTPS         bool
	Auth             AuthConfig
}

// AuthConfig holds the OIDC (Auth0) settings. Auth is enabled when Domain and
// ClientID are both set.
type AuthConfig struct {
	Domain       string
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Audience     string
	ReturnURL    string
	Required     bool
}

// Enabled reports whether an identity provider is configured
func (a AuthConfig) Enabled() bool {
	return a.Domain != "" && a.ClientID != ""
}

// Load reads .env files (if present) and then the environment
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only
func FromEnv() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("TABLE_LOAD_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TABLE_LOAD_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DatabasePath:     getEnv("DATABASE_PATH", "proof_calc.db"),
		LogStore:         strings.ToLower(getEnv("LOG_STORE", StoreSQLite)),
		ProofTableSource: os.Getenv("PROOF_TABLE_SOURCE"),
		TableLoadTimeout: timeout,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		AllowedOrigins:   splitList(os.Getenv("ALLOWED_ORIGINS")),
		UseHTTPS:         getBool("USE_HTTPS"),
		Auth: AuthConfig{
			Domain:       os.Getenv("AUTH0_DOMAIN"),
			ClientID:     os.Getenv("AUTH0_CLIENT_ID"),
			ClientSecret: os.Getenv("AUTH0_CLIENT_SECRET"),
			CallbackURL:  os.Getenv("AUTH0_CALLBACK_URL"),
			Audience:     os.Getenv("AUTH0_AUDIENCE"),
			ReturnURL:    getEnv("AUTH0_RETURN_URL", "/"),
			Required:     getBool("AUTH_REQUIRED"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks setting combinations
func (c *Config) Validate() error {
	if c.LogStore != StoreSQLite && c.LogStore != StoreMemory {
		return fmt.Errorf("LOG_STORE must be %q or %q, got %q", StoreSQLite, StoreMemory, c.LogStore)
	}
	if c.TableLoadTimeout <= 0 {
		return fmt.Errorf("TABLE_LOAD_TIMEOUT must be positive")
	}
	if c.Auth.Required && !c.Auth.Enabled() {
		return fmt.Errorf("AUTH_REQUIRED is set but AUTH0_DOMAIN / AUTH0_CLIENT_ID are not")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
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
