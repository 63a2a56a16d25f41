package dto

import (
	"errors"
	"fmt"
)

// Bounds of the public check API.
const (
	MinTimeoutSeconds   = 1
	MaxTimeoutSeconds   = 60
	MinConcurrentChecks = 1
	MaxConcurrentChecks = 50
	MaxBatchProxies     = 100
)

// ProxyCheckRequest is the body of POST /api/v1/proxy/check. Timeout is a
// pointer so an omitted field falls back to the configured default while an
// explicit out-of-range value is still rejected.
type ProxyCheckRequest struct {
	Proxy   string `json:"proxy"`
	Timeout *int   `json:"timeout"`
}

func (request ProxyCheckRequest) Validate() error {
	if request.Proxy == "" {
		return errors.New("proxy is required")
	}

	return validateTimeout(request.Timeout)
}

// TimeoutSeconds returns the requested timeout, or fallback when omitted.
func (request ProxyCheckRequest) TimeoutSeconds(fallback int) int {
	if request.Timeout != nil {
		return *request.Timeout
	}
	return fallback
}

// ProxyBatchCheckRequest is the body of POST /api/v1/proxy/check-batch.
// List entries are not validated individually; a broken entry surfaces as a
// failed result instead of rejecting the whole batch.
type ProxyBatchCheckRequest struct {
	Proxies       []string `json:"proxies"`
	Timeout       *int     `json:"timeout"`
	MaxConcurrent *int     `json:"max_concurrent"`
}

func (request ProxyBatchCheckRequest) Validate() error {
	if len(request.Proxies) < 1 || len(request.Proxies) > MaxBatchProxies {
		return fmt.Errorf("proxies must contain between 1 and %d items", MaxBatchProxies)
	}

	if err := validateTimeout(request.Timeout); err != nil {
		return err
	}

	if request.MaxConcurrent != nil && (*request.MaxConcurrent < MinConcurrentChecks || *request.MaxConcurrent > MaxConcurrentChecks) {
		return fmt.Errorf("max_concurrent must be between %d and %d", MinConcurrentChecks, MaxConcurrentChecks)
	}

	return nil
}

func (request ProxyBatchCheckRequest) TimeoutSeconds(fallback int) int {
	if request.Timeout != nil {
		return *request.Timeout
	}
	return fallback
}

// ConcurrencyLimit returns the requested cap, or fallback when omitted.
func (request ProxyBatchCheckRequest) ConcurrencyLimit(fallback int) int {
	if request.MaxConcurrent != nil {
		return *request.MaxConcurrent
	}
	return fallback
}

func validateTimeout(timeout *int) error {
	if timeout != nil && (*timeout < MinTimeoutSeconds || *timeout > MaxTimeoutSeconds) {
		return fmt.Errorf("timeout must be between %d and %d seconds", MinTimeoutSeconds, MaxTimeoutSeconds)
	}
	return nil
}
