package dto

import "proxycheck/internal/domain"

// ProxyCheckResponse is the wire form of one check result. Optional fields
// are pointers so absent values serialize as JSON null.
type ProxyCheckResponse struct {
	Proxy        string   `json:"proxy"`
	Status       string   `json:"status"`
	ResponseTime *float64 `json:"response_time"`
	IPAddress    *string  `json:"ip_address"`
	Country      *string  `json:"country"`
	City         *string  `json:"city"`
	Error        *string  `json:"error"`
}

// ProxyBatchCheckResponse carries per-proxy results in request order plus
// the derived batch statistics.
type ProxyBatchCheckResponse struct {
	Results     []ProxyCheckResponse `json:"results"`
	Total       int                  `json:"total"`
	Working     int                  `json:"working"`
	Failed      int                  `json:"failed"`
	SuccessRate float64              `json:"success_rate"`
}

// NewProxyCheckResponse maps a domain record onto the wire shape. Which
// optional fields appear follows the status: working results carry timing
// and geo data, everything else carries the error message.
func NewProxyCheckResponse(result domain.CheckResult) ProxyCheckResponse {
	response := ProxyCheckResponse{
		Proxy:  result.Proxy,
		Status: result.Status,
	}

	if !result.IsWorking() {
		response.Error = optionalString(result.Error)
		return response
	}

	response.ResponseTime = &result.ResponseTime
	response.IPAddress = optionalString(result.IPAddress)
	response.Country = optionalString(result.Country)
	response.City = optionalString(result.City)

	return response
}

// NewProxyBatchCheckResponse maps a result slice and derives its summary.
func NewProxyBatchCheckResponse(results []domain.CheckResult) ProxyBatchCheckResponse {
	responses := make([]ProxyCheckResponse, len(results))
	for i, result := range results {
		responses[i] = NewProxyCheckResponse(result)
	}

	summary := domain.Summarize(results)

	return ProxyBatchCheckResponse{
		Results:     responses,
		Total:       summary.Total,
		Working:     summary.Working,
		Failed:      summary.Failed,
		SuccessRate: summary.SuccessRate,
	}
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
