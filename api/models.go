package api

// CheckNumberRequest is the JSON body for POST /check-number.
type CheckNumberRequest struct {
	Phone    string `json:"phone"`
	Token    string `json:"token"`
	FinalKey string `json:"finalKey"`
	// CountryCode is the dial code used to expand a local number, e.g. "+60".
	CountryCode string `json:"countryCode,omitempty"`
}

// CheckNumberResponse is returned from POST /check-number.
type CheckNumberResponse struct {
	Number string   `json:"number"`
	Tags   []string `json:"tags"`
}

// HealthResponse is returned from GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is returned for all error cases.
type ErrorResponse struct {
	Error string `json:"error"`
}
