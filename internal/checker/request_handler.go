package checker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"proxycheck/internal/domain"
	"proxycheck/internal/support"
)

// GeoResolver backfills geolocation fields the probe endpoint left empty.
type GeoResolver interface {
	Fill(ip, country, city string) (string, string)
}

// probeResponse is the slice of the probe endpoint's JSON body the checker
// reads. ip-api.com reports the exit address under "query".
type probeResponse struct {
	Query   string `json:"query"`
	Country string `json:"country"`
	City    string `json:"city"`
}

// Checker probes proxies by routing a single GET through each one against a
// fixed test endpoint.
type Checker struct {
	testURL  string
	resolver GeoResolver
}

// New returns a Checker probing testURL. resolver may be nil; when present
// it fills country and city values the probe response did not carry.
func New(testURL string, resolver GeoResolver) *Checker {
	return &Checker{testURL: testURL, resolver: resolver}
}

// Check validates a single proxy. Every failure mode folds into the
// returned record; the engine classifies errors instead of propagating
// them.
func (c *Checker) Check(ctx context.Context, proxySpec string, timeout time.Duration) domain.CheckResult {
	normalized := support.NormalizeProxySpec(proxySpec)
	start := time.Now()

	client, err := support.CreateProxyClient(normalized, timeout)
	if err != nil {
		return failure(normalized, err)
	}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.testURL, nil)
	if err != nil {
		return failure(normalized, err)
	}
	req.Header.Set("Connection", "close")

	resp, err := client.Do(req)
	if err != nil {
		return failure(normalized, err)
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		return domain.CheckResult{
			Proxy:  normalized,
			Status: domain.StatusFailed,
			Error:  fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}

	var probe probeResponse
	if err := json.NewDecoder(resp.Body).Decode(&probe); err != nil {
		// A malformed 200 body is not a separate state; it classifies like
		// any other failure, timeout included when the deadline cut the
		// read short.
		return failure(normalized, err)
	}

	country, city := probe.Country, probe.City
	if c.resolver != nil {
		country, city = c.resolver.Fill(probe.Query, country, city)
	}

	return domain.CheckResult{
		Proxy:        normalized,
		Status:       domain.StatusWorking,
		ResponseTime: domain.Round2(elapsed.Seconds()),
		IPAddress:    probe.Query,
		Country:      country,
		City:         city,
	}
}

// failure classifies err into a timeout or a generic failed record.
func failure(proxy string, err error) domain.CheckResult {
	if isTimeout(err) {
		return domain.CheckResult{
			Proxy:  proxy,
			Status: domain.StatusTimeout,
			Error:  "Connection timeout",
		}
	}

	return domain.CheckResult{
		Proxy:  proxy,
		Status: domain.StatusFailed,
		Error:  err.Error(),
	}
}

// isTimeout reports whether err means the probe ran out of time, however
// the transport wrapped it.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
