package domain

import "math"

// Statuses a proxy check can resolve to.
const (
	StatusWorking = "working"
	StatusFailed  = "failed"
	StatusTimeout = "timeout"
)

// CheckResult is the outcome record of a single proxy check. It is built
// once inside the check and never mutated afterwards; which optional fields
// carry meaning follows from Status.
type CheckResult struct {
	Proxy        string
	Status       string
	ResponseTime float64 // seconds, set only when the check worked
	IPAddress    string
	Country      string
	City         string
	Error        string
}

// IsWorking reports whether the probe came back with HTTP 200.
func (result CheckResult) IsWorking() bool {
	return result.Status == StatusWorking
}

// Summary aggregates one batch of check results.
type Summary struct {
	Total       int
	Working     int
	Failed      int
	SuccessRate float64
}

// Summarize derives batch statistics. Timeouts count into Failed here even
// though their per-result status stays StatusTimeout.
func Summarize(results []CheckResult) Summary {
	summary := Summary{Total: len(results)}

	for _, result := range results {
		if result.IsWorking() {
			summary.Working++
		}
	}

	summary.Failed = summary.Total - summary.Working
	if summary.Total > 0 {
		summary.SuccessRate = Round2(float64(summary.Working) / float64(summary.Total) * 100)
	}

	return summary
}

// Round2 rounds to two decimals, the precision the API reports response
// times and success rates with.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
