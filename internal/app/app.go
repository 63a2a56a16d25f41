package app

import (
	"flag"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"proxycheck/internal/app/server"
	"proxycheck/internal/app/version"
	"proxycheck/internal/config"
	"proxycheck/internal/geolite"
)

const defaultPort = 8000

func Run() error {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found. Falling back to system environment variables.")
	}

	log.SetLevel(log.DebugLevel)

	portFlag := flag.Int("port", defaultPort, "Port for the API server")
	flag.Parse()

	config.Load()
	cfg := config.GetConfig()

	port := resolvePort("PORT", *portFlag)

	if cfg.GeoLiteCityDB != "" {
		resolver, err := geolite.Open(cfg.GeoLiteCityDB)
		if err != nil {
			log.Warn("GeoLite enrichment disabled", "path", cfg.GeoLiteCityDB, "error", err)
		} else {
			defer func() {
				if err := resolver.Close(); err != nil {
					log.Warn("error closing geolite resolver", "error", err)
				}
			}()

			server.SetGeoResolver(resolver)
			log.Info("GeoLite enrichment enabled", "path", cfg.GeoLiteCityDB)
		}
	}

	log.Info("Starting", "app", cfg.AppName, "version", version.BuildVersion())

	return server.OpenRoutes(port)
}

func resolvePort(envKey string, fallback int) int {
	if port := readPort(envKey); port != 0 {
		return port
	}
	return fallback
}

func readPort(envKey string) int {
	raw := os.Getenv(envKey)
	if raw == "" {
		return 0
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port == 0 {
		log.Warn("invalid port override", "env", envKey, "value", raw)
		return 0
	}
	return port
}
