package config

import (
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"proxycheck/internal/support"
)

// Config is one immutable snapshot of the runtime settings. Load replaces
// the whole value, so readers always see a consistent copy.
type Config struct {
	AppName string

	DefaultTimeout       int // seconds
	DefaultMaxConcurrent int
	TestURL              string

	CORSAllowOrigins     []string
	CORSAllowMethods     []string
	CORSAllowHeaders     []string
	CORSAllowCredentials bool

	GeoLiteCityDB string // empty disables local geo enrichment
	StaticDir     string
}

var configValue atomic.Value

func init() {
	// Initialize configValue with the built-in defaults
	configValue.Store(defaultConfig())
}

func defaultConfig() Config {
	return Config{
		AppName:              "Proxy Checker API",
		DefaultTimeout:       10,
		DefaultMaxConcurrent: 10,
		TestURL:              "http://ip-api.com/json/",
		CORSAllowOrigins:     []string{"*"},
		CORSAllowMethods:     []string{"*"},
		CORSAllowHeaders:     []string{"*"},
		CORSAllowCredentials: true,
		StaticDir:            "./static",
	}
}

// Load reads the environment into a fresh snapshot and publishes it.
// Unset or unparsable variables keep their defaults.
func Load() {
	defaults := defaultConfig()

	newConfig := Config{
		AppName:              support.GetEnv("APP_NAME", defaults.AppName),
		DefaultTimeout:       support.GetEnvInt("DEFAULT_TIMEOUT", defaults.DefaultTimeout),
		DefaultMaxConcurrent: support.GetEnvInt("DEFAULT_MAX_CONCURRENT", defaults.DefaultMaxConcurrent),
		TestURL:              support.GetEnv("TEST_URL", defaults.TestURL),
		CORSAllowOrigins:     splitList(support.GetEnv("CORS_ALLOW_ORIGINS", "*")),
		CORSAllowMethods:     splitList(support.GetEnv("CORS_ALLOW_METHODS", "*")),
		CORSAllowHeaders:     splitList(support.GetEnv("CORS_ALLOW_HEADERS", "*")),
		CORSAllowCredentials: support.GetEnvBool("CORS_ALLOW_CREDENTIALS", defaults.CORSAllowCredentials),
		GeoLiteCityDB:        support.GetEnv("GEOLITE_CITY_DB", ""),
		StaticDir:            support.GetEnv("STATIC_DIR", defaults.StaticDir),
	}

	configValue.Store(newConfig)
	log.Debug("Configuration applied", "source", "env")
}

func GetConfig() Config {
	// Get the current Config atomically
	return configValue.Load().(Config)
}

// splitList parses a comma-separated allow-list, dropping blank entries.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")

	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}

	return values
}
