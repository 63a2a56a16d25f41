package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"proxycheck/internal/api/dto"
	"proxycheck/internal/app/version"
	"proxycheck/internal/config"
)

func getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{
		Status:  "healthy",
		AppName: config.GetConfig().AppName,
		Version: version.BuildVersion(),
	})
}

func getDocs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app_name": config.GetConfig().AppName,
		"build":    version.GetInfo(),
		"endpoints": map[string]string{
			"POST /api/v1/proxy/check":       "Check a single proxy",
			"POST /api/v1/proxy/check-batch": "Check multiple proxies concurrently",
			"GET /api/v1/health":             "Service health and build metadata",
		},
	})
}

// serveRoot serves the frontend index when one is mounted and falls back to
// the JSON welcome payload. Every unmatched path lands here too and gets
// the API's 404 shape.
func serveRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, "Not Found", http.StatusNotFound)
		return
	}

	cfg := config.GetConfig()

	index := filepath.Join(cfg.StaticDir, "index.html")
	if info, err := os.Stat(index); err == nil && !info.IsDir() {
		http.ServeFile(w, r, index)
		return
	}

	writeJSON(w, http.StatusOK, dto.WelcomeResponse{
		Message: fmt.Sprintf("Welcome to %s", cfg.AppName),
		Version: version.BuildVersion(),
		Docs:    "/docs",
		Health:  "/api/v1/health",
	})
}

func serveStatic(w http.ResponseWriter, r *http.Request) {
	fs := http.FileServer(http.Dir(config.GetConfig().StaticDir))
	http.StripPrefix("/static/", fs).ServeHTTP(w, r)
}
