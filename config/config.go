// Package config loads server settings from .env files and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port      string
	GinMode   string
	DataDir   string
	DevMode   bool
	RateLimit float64 // requests per second per client
	RateBurst float64
	LogLevel  string

	// RetainMonths is how many months of usage statistics are kept.
	RetainMonths int
}

// Load reads .env.development, falling back to .env, then the environment.
// Missing files are not an error. The returned bool reports whether a file
// was loaded.
func Load() (Config, bool, error) {
	loaded := true
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			loaded = false
		}
	}
	cfg, err := FromEnv()
	return cfg, loaded, err
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:     getenv("PORT", "8082"),
		GinMode:  getenv("GIN_MODE", gin.ReleaseMode),
		DataDir:  getenv("DATA_DIR", "data"),
		DevMode:  os.Getenv("DEV_MODE") == "true",
		LogLevel: getenv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.RateLimit, err = getfloat("RATE_LIMIT", 2); err != nil {
		return Config{}, err
	}
	if cfg.RateBurst, err = getfloat("RATE_BURST", 5); err != nil {
		return Config{}, err
	}
	if cfg.RetainMonths, err = getint("RETAIN_MONTHS", 12); err != nil {
		return Config{}, err
	}

	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return Config{}, fmt.Errorf("GIN_MODE: unknown mode %q", cfg.GinMode)
	}
	return cfg, nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getfloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s: must be a positive number, got %q", key, v)
	}
	return f, nil
}

func getint(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s: must be a positive integer, got %q", key, v)
	}
	return n, nil
}
