package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"proxycheck/internal/api/dto"
	"proxycheck/internal/checker"
	"proxycheck/internal/config"
)

// geoResolver optionally backfills geolocation on working results. It is
// wired once at startup and stays nil when no local database is configured.
var geoResolver checker.GeoResolver

// SetGeoResolver installs the resolver the proxy handlers hand to the
// check engine.
func SetGeoResolver(resolver checker.GeoResolver) {
	geoResolver = resolver
}

func checkProxy(w http.ResponseWriter, r *http.Request) {
	var request dto.ProxyCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}

	if err := request.Validate(); err != nil {
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	cfg := config.GetConfig()
	timeout := time.Duration(request.TimeoutSeconds(cfg.DefaultTimeout)) * time.Second

	log.Debug("Checking proxy", "proxy", request.Proxy, "timeout", timeout)

	engine := checker.New(cfg.TestURL, geoResolver)
	result := engine.Check(r.Context(), request.Proxy, timeout)

	log.Debug("Proxy check completed", "proxy", result.Proxy, "status", result.Status)

	writeJSON(w, http.StatusOK, dto.NewProxyCheckResponse(result))
}

func checkProxyBatch(w http.ResponseWriter, r *http.Request) {
	var request dto.ProxyBatchCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, "Invalid request body", http.StatusUnprocessableEntity)
		return
	}

	if err := request.Validate(); err != nil {
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	cfg := config.GetConfig()
	timeout := time.Duration(request.TimeoutSeconds(cfg.DefaultTimeout)) * time.Second
	maxConcurrent := request.ConcurrencyLimit(cfg.DefaultMaxConcurrent)

	log.Debug(
		"Checking proxy batch",
		"proxies", len(request.Proxies),
		"timeout", timeout,
		"max_concurrent", maxConcurrent,
	)

	engine := checker.New(cfg.TestURL, geoResolver)
	results := engine.CheckAll(r.Context(), request.Proxies, timeout, maxConcurrent)

	writeJSON(w, http.StatusOK, dto.NewProxyBatchCheckResponse(results))
}
