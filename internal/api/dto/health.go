package dto

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	AppName string `json:"app_name"`
	Version string `json:"version"`
}

// WelcomeResponse is the JSON fallback for GET / when no frontend is
// mounted.
type WelcomeResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
	Health  string `json:"health"`
}
