// Package config loads runtime configuration from the environment, organised
// by concern with sensible local defaults.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr            = ":8080"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultSessionLifetime = 12 * time.Hour
	defaultCartLifetime    = 30 * 24 * time.Hour
	defaultLogLevel        = "info"
)

// Config captures all runtime configuration.
type Config struct {
	Server  ServerConfig
	API     APIConfig
	Cookies CookieConfig
	Log     LogConfig
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// APIConfig points at the backing catalog API. An empty BaseURL selects the
// in-memory static catalog for offline development.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CookieConfig holds the signing material and lifetimes for the client-side
// stores. A generated ephemeral hash key is used when none is configured,
// which invalidates carts and sessions on restart.
type CookieConfig struct {
	HashKey          []byte
	BlockKey         []byte
	Secure           bool
	SessionLifetime  time.Duration
	CartLifetime     time.Duration
	HashKeyEphemeral bool
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Addr:         getEnv("MEENORA_HTTP_ADDR", defaultAddr),
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		API: APIConfig{
			BaseURL: strings.TrimSpace(os.Getenv("MEENORA_API_URL")),
			Timeout: 15 * time.Second,
		},
		Cookies: CookieConfig{
			Secure:          strings.EqualFold(os.Getenv("MEENORA_ENV"), "prod"),
			SessionLifetime: defaultSessionLifetime,
			CartLifetime:    defaultCartLifetime,
		},
		Log: LogConfig{
			Level: getEnv("MEENORA_LOG_LEVEL", defaultLogLevel),
		},
	}

	hashKey, err := keyFromEnv("MEENORA_COOKIE_HASH_KEY")
	if err != nil {
		return Config{}, err
	}
	if hashKey == nil {
		hashKey = make([]byte, 32)
		if _, err := rand.Read(hashKey); err != nil {
			return Config{}, fmt.Errorf("config: generate hash key: %w", err)
		}
		cfg.Cookies.HashKeyEphemeral = true
	}
	cfg.Cookies.HashKey = hashKey

	blockKey, err := keyFromEnv("MEENORA_COOKIE_BLOCK_KEY")
	if err != nil {
		return Config{}, err
	}
	cfg.Cookies.BlockKey = blockKey

	return cfg, nil
}

// keyFromEnv decodes a base64 key from the environment, accepting raw bytes
// as a fallback for local setups.
func keyFromEnv(name string) ([]byte, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil, nil
	}
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil && len(decoded) >= 16 {
		return decoded, nil
	}
	if len(raw) < 16 {
		return nil, fmt.Errorf("config: %s must be at least 16 bytes", name)
	}
	return []byte(raw), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
