package checker

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"proxycheck/internal/domain"
)

// CheckAll probes every spec with at most maxConcurrent checks in flight.
// results[i] always belongs to proxySpecs[i], regardless of which checks
// finish first.
func (c *Checker) CheckAll(ctx context.Context, proxySpecs []string, timeout time.Duration, maxConcurrent int) []domain.CheckResult {
	results := make([]domain.CheckResult, len(proxySpecs))
	if len(proxySpecs) == 0 {
		return results
	}

	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	start := time.Now()

	var group errgroup.Group
	group.SetLimit(maxConcurrent)

	for i, spec := range proxySpecs {
		i, spec := i, spec
		group.Go(func() error {
			results[i] = c.Check(ctx, spec, timeout)
			return nil
		})
	}

	// Check absorbs its own failures, so Wait only gates completion here.
	_ = group.Wait()

	summary := domain.Summarize(results)
	log.Debug(
		"Batch check completed",
		"total", summary.Total,
		"working", summary.Working,
		"failed", summary.Failed,
		"duration", time.Since(start),
	)

	return results
}
