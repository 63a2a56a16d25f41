package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"proxycheck/internal/config"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()

		// Set CORS headers
		if origin := allowedOrigin(cfg.CORSAllowOrigins, r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.CORSAllowMethods, ", "))
		w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.CORSAllowHeaders, ", "))
		if cfg.CORSAllowCredentials {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Pass the request to the next handler
		next.ServeHTTP(w, r)
	})
}

// allowedOrigin picks the Access-Control-Allow-Origin value. A wildcard
// entry short-circuits; otherwise the request origin is echoed back when it
// is on the allow-list.
func allowedOrigin(allowList []string, origin string) string {
	for _, allowed := range allowList {
		if allowed == "*" {
			return "*"
		}
		if origin != "" && allowed == origin {
			return origin
		}
	}
	return ""
}

// recoverErrors converts a handler panic into the API's 500 shape. The
// checker folds its own failures into results, so this only catches
// genuinely unexpected faults.
func recoverErrors(prefix string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("Recovered handler panic", "path", r.URL.Path, "panic", rec)
				writeError(w, fmt.Sprintf("%s: %v", prefix, rec), http.StatusInternalServerError)
			}
		}()

		next(w, r)
	}
}

// Handler assembles the API router with CORS applied.
func Handler() http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("POST /api/v1/proxy/check", recoverErrors("Error checking proxy", checkProxy))
	router.HandleFunc("POST /api/v1/proxy/check-batch", recoverErrors("Error checking proxies", checkProxyBatch))
	router.HandleFunc("GET /api/v1/health", getHealth)
	router.HandleFunc("GET /docs", getDocs)

	// ---------------
	// FRONTEND
	// ---------------
	router.HandleFunc("GET /static/", serveStatic)
	router.HandleFunc("/", serveRoot)

	return enableCORS(router)
}

func OpenRoutes(port int) error {
	log.Debug("Routes opened")

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: Handler(),
	}

	log.Infof("Starting proxycheck backend on port :%d", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}
